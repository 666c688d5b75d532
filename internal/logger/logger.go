package logger

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Log — общий логгер сервиса. До вызова Init пишет в stderr с уровнем info.
var Log = logrus.New()

// Init настраивает уровень и формат логов: JSON для production, текст для development.
func Init(level string, production bool) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	if production {
		Log.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	Log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}

// Silence отключает вывод. Используется в тестах.
func Silence() {
	Log.SetOutput(io.Discard)
}
