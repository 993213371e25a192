package manifest

import (
	"os"
	"strings"
)

func hostEnviron() []string {
	return os.Environ()
}

func lookupHostEnv(name string) (string, bool) {
	return os.LookupEnv(name)
}

func splitEnv(entry string) (name, value string, ok bool) {
	name, value, ok = strings.Cut(entry, "=")
	return
}
