// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the render pipeline (load catalogue, draw
// chart), decoupled from any specific entrypoint like a CLI.
package app
