package main

import "github.com/insightdelivered/card-statement-extractor/internal/commands"

const version = "1.0.0"

func main() {
	commands.Execute(version)
}
