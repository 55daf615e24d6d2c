package main

import "github.com/scribeworks/transcriber-api/cmd"

// @title           Transcriber API
// @version         1.0.0
// @description     An audio transcription and AI analysis API with per-user quotas
// @contact.name    API Support
// @contact.url     https://github.com/scribeworks/transcriber-api
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /
// @schemes         http https
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 JWT bearer token, sent as "Bearer <token>"
func main() {
	cmd.Execute()
}
