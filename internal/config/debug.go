package config

import "os"

func IsDebug() bool {
	return os.Getenv("NAVI_DEBUG") == "1"
}
