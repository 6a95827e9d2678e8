package ui

import "errors"

var (
	ErrUnknownComponentType = errors.New("unknown component type")
	ErrDuplicateInterface   = errors.New("interface already loaded")
	ErrDuplicateComponentID = errors.New("duplicate component id")
	ErrNoBackup             = errors.New("no backup to reload from")
	ErrUnknownComponent     = errors.New("unknown component")
	ErrInterfaceNotFound    = errors.New("interface not found")
)
