package wsmodels

type ServerMessage struct {
	ToUserID string `json:"-"`
	Time     string `json:"time"` // event time
	Code     string `json:"code"` // event code, same as notification kind
	Msg      string `json:"msg"`  // event text
}
