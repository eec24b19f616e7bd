package main

import (
	"flag"
	"log"
	"os"

	"github.com/gabfec/go-http-server/httpd"
	"github.com/gabfec/go-http-server/internal/obs"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:4221", "listen address")
	directory := flag.String("directory", "", "directory served under /files/")
	verbose := flag.Bool("v", false, "log at debug level")
	flag.Parse()

	min := obs.Info
	if *verbose {
		min = obs.Debug
	}
	s := &httpd.Server{
		Addr:    *addr,
		Handler: &routes{dir: *directory},
		Logger:  obs.StdLogger{L: log.New(os.Stderr, "", log.LstdFlags), Min: min},
	}
	log.Printf("listening on %s", *addr)
	if err := s.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}
