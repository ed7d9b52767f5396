package logging

import (
	"io"
	"log"
	"os"

	"github.com/covalenthq/lumberjack"
	"github.com/gin-gonic/gin"
)

// Logger is what use cases and jobs log through.
type Logger interface {
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

type Std struct{}

func (Std) Info(format string, args ...any)  { log.Printf("INFO "+format, args...) }
func (Std) Warn(format string, args ...any)  { log.Printf("WARN "+format, args...) }
func (Std) Error(format string, args ...any) { log.Printf("ERROR "+format, args...) }

type Nop struct{}

func (Nop) Info(string, ...any)  {}
func (Nop) Warn(string, ...any)  {}
func (Nop) Error(string, ...any) {}

// Setup sends the standard logger and gin's request log to stdout and, when
// file is set, to a rotated log file.
func Setup(file string) io.Closer {
	if file == "" {
		return io.NopCloser(nil)
	}

	rotated := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     30,
		Compress:   true,
	}

	out := io.MultiWriter(rotated, os.Stdout)
	log.SetOutput(out)
	gin.DefaultWriter = out
	gin.DefaultErrorWriter = out

	return rotated
}
