package fiberlog

import (
	"time"

	authutils "recruitment-backend/lib/utils/auth-utils"

	"github.com/gofiber/fiber/v2"
)

const (
	TagPid      = "pid"
	TagStatus   = "status"
	TagLatency  = "latency"
	TagMethod   = "method"
	TagPath     = "path"
	TagRoute    = "route"
	TagIP       = "ip"
	TagUA       = "user_agent"
	TagBytesOut = "bytes_out"
	TagUserID   = "user_id"
	TagError    = "error"
)

// data is collected per request
type data struct {
	pid   int
	start time.Time
	end   time.Time
	err   error
}

// FuncTag returns the value of a log field
type FuncTag func(c *fiber.Ctx, d *data) interface{}

var funcTags = map[string]FuncTag{
	TagPid: func(c *fiber.Ctx, d *data) interface{} {
		return d.pid
	},
	TagStatus: func(c *fiber.Ctx, d *data) interface{} {
		return c.Response().StatusCode()
	},
	TagLatency: func(c *fiber.Ctx, d *data) interface{} {
		return d.end.Sub(d.start).String()
	},
	TagMethod: func(c *fiber.Ctx, d *data) interface{} {
		return c.Method()
	},
	TagPath: func(c *fiber.Ctx, d *data) interface{} {
		return c.Path()
	},
	TagRoute: func(c *fiber.Ctx, d *data) interface{} {
		if r := c.Route(); r != nil {
			return r.Path
		}
		return ""
	},
	TagIP: func(c *fiber.Ctx, d *data) interface{} {
		return c.IP()
	},
	TagUA: func(c *fiber.Ctx, d *data) interface{} {
		return c.Get(fiber.HeaderUserAgent)
	},
	TagBytesOut: func(c *fiber.Ctx, d *data) interface{} {
		return len(c.Response().Body())
	},
	TagUserID: func(c *fiber.Ctx, d *data) interface{} {
		return authutils.GetUserIDFromClaims(authutils.GetClaims(c))
	},
	TagError: func(c *fiber.Ctx, d *data) interface{} {
		if d.err != nil {
			return d.err.Error()
		}
		return ""
	},
}

// getFuncTagMap keeps only the tags enabled in config, unknown tags are ignored
func getFuncTagMap(cfg Config) map[string]FuncTag {
	ftm := make(map[string]FuncTag, len(cfg.Tags))
	for _, tag := range cfg.Tags {
		if ft, ok := funcTags[tag]; ok {
			ftm[tag] = ft
		}
	}
	return ftm
}
