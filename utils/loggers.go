package utils

import (
	"log"
	"os"
)

const logPrefix = "[CASEFILE] "

// Package-level loggers carry usable defaults so early call sites never hit
// a nil logger; InitLogger upgrades them with caller locations at startup.
var (
	infoLogger    = log.New(os.Stdout, logPrefix+"INFO: ", log.LstdFlags)
	warningLogger = log.New(os.Stdout, logPrefix+"WARN: ", log.LstdFlags)
	errorLogger   = log.New(os.Stderr, logPrefix+"ERROR: ", log.LstdFlags)
)

func InitLogger() {
	flags := log.Ldate | log.Ltime | log.Lshortfile
	infoLogger = log.New(os.Stdout, logPrefix+"INFO: ", flags)
	warningLogger = log.New(os.Stdout, logPrefix+"WARN: ", flags)
	errorLogger = log.New(os.Stderr, logPrefix+"ERROR: ", flags)
}

func LogInfo(format string, args ...any) {
	infoLogger.Printf(format, args...)
}

func LogWarning(format string, args ...any) {
	warningLogger.Printf(format, args...)
}

func LogError(message string, err error) {
	if err != nil {
		errorLogger.Printf("%s: %v", message, err)
	} else {
		errorLogger.Println(message)
	}
}
