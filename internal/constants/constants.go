package constants

var Version = "dev"

const (
	ServiceName = "ddns-cli"
	AppID       = "ddns-cli"
)
