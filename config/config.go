package config

import (
	"os"
	"strconv"
	"strings"
)

var (
	TLS_DOMAINS    = "" // e.g. "example.com,example2.com"
	MYSQL_DSN      = "" // MySQL will be used if this is set
	SQLITE_FILE    = "yatube.db"
	BIND_ADDRESS   = "0.0.0.0:8080"
	TMP_DIR        = "/tmp" // Used when post images live in a S3 bucket
	MEDIA_DIR      = ""     // Used for creating the initial disk bucket
	DEBUG_MODE     = true
	CACHE_TIME     = 20 // Seconds the rendered index page stays cached
	POSTS_PER_PAGE = 10
	THUMB_SIZE     = 400 // Max dimension for post image thumbnails
)

func init() {
	readEnvString("TLS_DOMAINS", &TLS_DOMAINS)
	readEnvString("MYSQL_DSN", &MYSQL_DSN)
	readEnvString("SQLITE_FILE", &SQLITE_FILE)
	readEnvString("BIND_ADDRESS", &BIND_ADDRESS)
	readEnvString("TMP_DIR", &TMP_DIR)
	readEnvString("MEDIA_DIR", &MEDIA_DIR)
	readEnvBool("DEBUG_MODE", &DEBUG_MODE)
	readEnvInt("CACHE_TIME", &CACHE_TIME)
	readEnvInt("POSTS_PER_PAGE", &POSTS_PER_PAGE)
	readEnvInt("THUMB_SIZE", &THUMB_SIZE)
}

func readEnvString(name string, value *string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(os.Getenv(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}

func readEnvInt(name string, value *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	f, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*value = f
}
