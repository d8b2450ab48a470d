package main

import "jobboard/internal/app"

// @title           JobBoard API
// @version         1.0
// @description     REST API for a job board: OTP-based auth, jobs, categories, favorites and applications.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @BasePath /
func main() {
	app.Run()
}
