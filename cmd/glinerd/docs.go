package main

// General API documentation for swaggo. Build with -tags=swagger to serve the UI.
//
// @title           glinerd API
// @version         0.1.0
// @description     HTTP API for PII entity extraction with a GLiNER model.
//
// @BasePath  /
//
// @schemes http
