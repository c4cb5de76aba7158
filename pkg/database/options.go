package database

import (
	"os"
	"strings"
)

const (
	defaultPasswordEnvVar = "DATABASE_PASSWORD"
	defaultUsernameEnvVar = "DATABASE_USER"
	defaultMaxConns       = 10
)

// Options are options for the database.
type Options struct {
	// URL encodes how we'll connect to the database.
	URL string

	// PasswordEnvVar is the environment variable holding the database password, substituted
	// into the URL wherever "$<PasswordEnvVar>" appears. Defaults to "DATABASE_PASSWORD".
	PasswordEnvVar string

	// UsernameEnvVar is as PasswordEnvVar, for the username. Defaults to "DATABASE_USER".
	UsernameEnvVar string

	// MaxConns caps the connection pool
	MaxConns int32
}

func (o *Options) SetDefaults() {
	if o.PasswordEnvVar == "" {
		o.PasswordEnvVar = defaultPasswordEnvVar
	}
	if o.UsernameEnvVar == "" {
		o.UsernameEnvVar = defaultUsernameEnvVar
	}
	if o.MaxConns <= 0 {
		o.MaxConns = defaultMaxConns
	}
}

// ConnString returns the URL with credentials substituted in from the environment
func (o *Options) ConnString() string {
	o.SetDefaults()
	url := strings.Replace(o.URL, "$"+o.UsernameEnvVar, os.Getenv(o.UsernameEnvVar), 1)
	return strings.Replace(url, "$"+o.PasswordEnvVar, os.Getenv(o.PasswordEnvVar), 1)
}
