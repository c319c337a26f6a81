package mail

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
}

type DealClosedEmailData struct {
	Prospect string
	Amount   string
	Week     string
}
