package ui

import "go.uber.org/zap"

func zapComponent(c Component) zap.Field {
	return zap.Dict("component",
		zap.String("id", c.ID()),
		zap.String("type", c.Type()),
		zap.String("interface", c.InterfaceName()),
	)
}

func zapPath(path string) zap.Field { return zap.String("path", path) }

func zapError(err error) zap.Field { return zap.Error(err) }
