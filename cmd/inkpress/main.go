// Command inkpress runs the site server. All configuration comes from
// environment variables; a .env file in the working directory is loaded
// first when present.
package main

import (
	"log"
	"strings"

	"github.com/joho/godotenv"

	"github.com/eringen/inkpress"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	cfg := inkpress.SiteConfig{
		Name:          inkpress.EnvOr("SITE_NAME", "Site"),
		URL:           strings.TrimSuffix(inkpress.EnvOr("SITE_URL", "http://localhost:3000"), "/"),
		Description:   inkpress.EnvOr("SITE_DESCRIPTION", ""),
		Addr:          inkpress.EnvOr("ADDR", ":3000"),
		DatabasePath:  inkpress.EnvOr("DATABASE_PATH", "data/site.db"),
		SessionSecret: inkpress.MustEnv("SESSION_SECRET"),
		CookieSecure:  strings.EqualFold(inkpress.EnvOr("COOKIE_SECURE", ""), "true"),
		AdminUsername: inkpress.EnvOr("ADMIN_USERNAME", "admin"),
		AdminPassword: inkpress.EnvOr("ADMIN_PASSWORD", ""),
	}

	app := inkpress.New(cfg, inkpress.WithStaticDir(inkpress.EnvOr("STATIC_DIR", "public")))
	defer app.Close()

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
