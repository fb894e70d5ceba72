package main

import (
	"log"
	"os"
)

func main() {
	var s srv
	s.loadApp()

	if err := s.app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
