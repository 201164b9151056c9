package log

import (
	"go.uber.org/zap"
)

// L is the process logger. It is a no-op until Init is called.
var L = zap.NewNop()

// Init builds the global logger: JSON in production, console otherwise.
func Init(production bool) (*zap.Logger, error) {
	var (
		l   *zap.Logger
		err error
	)
	if production {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	L = l
	zap.ReplaceGlobals(l)
	return l, nil
}

func Sync() { _ = L.Sync() }
