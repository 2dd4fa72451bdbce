package main

import (
	"context"
	"log"

	"github.com/pawfectmatch/adoption-api/internal/app/api"
)

func main() {
	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("adoption API exited: %v", err)
	}
}
