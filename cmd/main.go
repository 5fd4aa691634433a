package main

import (
	"go-ledger-api/app"
)

func main() {
	app.Run()
}
