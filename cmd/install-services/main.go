// Command install-services installs and enables the systemd units of the
// Pi services and writes a default configuration file if there is none.
//
// PISERVICES_ROOT selects the root filesystem (default "/"), so an SD card
// mounted elsewhere can be prepared. PISERVICES_BIN_DIR is where the
// binaries live on the Pi (default /usr/local/bin).
package main

import (
	"errors"
	"log"
	"os"
	"path/filepath"

	"piservices/internal/config"
	"piservices/internal/eventlog"
	"piservices/internal/service"
)

func main() {
	root := envOr("PISERVICES_ROOT", "/")
	binDir := envOr("PISERVICES_BIN_DIR", "/usr/local/bin")
	logger := eventlog.New("install-services", "")

	if err := service.Install(root, service.Units(binDir)...); err != nil {
		log.Fatalf("installing units: %v", err)
	}
	logger.Log("units installed under %s", root)

	cfgPath := filepath.Join(root, config.DefaultPath)
	if _, err := os.Stat(cfgPath); errors.Is(err, os.ErrNotExist) {
		if err := config.Save(cfgPath, config.Default()); err != nil {
			log.Fatalf("writing default configuration: %v", err)
		}
		logger.Log("default configuration written to %s", cfgPath)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
