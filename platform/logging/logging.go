package logging

import (
	"os"

	log "github.com/sirupsen/logrus"
)

// Init configures the global logger. Unknown levels fall back to info.
func Init(level, format string) {
	log.SetOutput(os.Stdout)
	if format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	lvl, err := log.ParseLevel(level)
	if err != nil {
		log.WithField("level", level).Warn("unknown log level, using info")
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
}

// Room returns an entry tagged with the room and player ids.
func Room(roomId, playerId string) *log.Entry {
	fields := log.Fields{"room": roomId}
	if playerId != "" {
		fields["player"] = playerId
	}
	return log.WithFields(fields)
}
