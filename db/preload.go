package db

import (
	"recruitment-backend/config"
	usersstore "recruitment-backend/lib/users/store"
	authutils "recruitment-backend/lib/utils/auth-utils"
	"recruitment-backend/models"
	dbmodels "recruitment-backend/models/db"
	"strings"

	log "github.com/sirupsen/logrus"
)

func InitPreload() {
	addAdmin()
}

// addAdmin seeds the single admin account, admins can not self register
func addAdmin() {
	email := strings.ToLower(strings.TrimSpace(config.Conf.Admin.Email))
	if email == "" || config.Conf.Admin.Password == "" {
		log.Warn("admin not added, ADMIN_EMAIL or ADMIN_PASSWORD is empty")
		return
	}
	store := usersstore.NewInstance(DB)
	existedRec, err := store.FindByEmail(email)
	if err != nil {
		log.WithError(err).Error("failed to add admin")
		return
	}
	if existedRec != nil {
		if existedRec.Role != models.UserRoleAdmin {
			log.WithField("email", email).Error("admin email is taken by a non admin account")
		}
		return
	}
	hash, err := authutils.HashPassword(config.Conf.Admin.Password)
	if err != nil {
		log.WithError(err).Error("failed to add admin")
		return
	}
	rec := dbmodels.User{
		Username:   config.Conf.Admin.Username,
		Email:      email,
		Password:   hash,
		Role:       models.UserRoleAdmin,
		IsApproved: true,
	}
	if _, err = store.Create(rec); err != nil {
		log.WithError(err).Error("failed to add admin")
		return
	}
	log.WithField("email", email).Info("admin added")
}
