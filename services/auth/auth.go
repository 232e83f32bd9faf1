package auth

import (
	"github.com/gin-gonic/gin"
	"github.com/urfave/cli"
)

const (
	adminUsernameFlag = "admin-username"
	adminPasswordFlag = "admin-password"
)

const realm = "MovieZone Admin"

func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.StringFlag{
			Name:   adminUsernameFlag,
			Usage:  "admin basic auth username",
			Value:  "admin",
			EnvVar: "ADMIN_USERNAME",
		},
		cli.StringFlag{
			Name:   adminPasswordFlag,
			Usage:  "admin basic auth password",
			Value:  "password",
			EnvVar: "ADMIN_PASSWORD",
		},
	)
}

// New returns the Basic-Auth guard for the admin routes. Missing or bad
// credentials get a 401 with the WWW-Authenticate challenge.
func New(c *cli.Context) gin.HandlerFunc {
	return gin.BasicAuthForRealm(gin.Accounts{
		c.String(adminUsernameFlag): c.String(adminPasswordFlag),
	}, realm)
}
