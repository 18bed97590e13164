package server

//go:generate swag init -g internal/server/server.go -o docs/swagger

// @title Repopulse API
// @version 0.1
// @description Dashboard API for repository health analysis.
// @contact.name Repopulse Maintainers
// @contact.url https://github.com/raysh454/repopulse
// @BasePath /
