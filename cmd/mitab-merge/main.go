// cmd/mitab-merge/main.go
package main

import (
	"mitabmerge/internal/app"
	"mitabmerge/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
