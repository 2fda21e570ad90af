package main

import "paiefacile/internal/app/server"

func main() {
	server.Run()
}
