// Serve the starfield page for local development.
// It starts at -port and tries the next one while the port is busy.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strings"
)

func main() {
	dir := flag.String("dir", "starfield", "directory holding index.html and main.wasm")
	port := flag.Int("port", 8080, "first port to try")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	for {
		addr := fmt.Sprintf(":%d", *port)
		listener, err := net.Listen("tcp", addr)
		if err != nil {
			log.Warn("err opening port", "addr", addr, "err", err)
			*port++
			continue
		}
		log.Info("listening", "addr", addr, "dir", *dir)
		err = http.Serve(listener, logger(log, http.FileServer(http.Dir(*dir))))
		log.Error("serve", "err", err)
		os.Exit(1)
	}
}

func logger(log *slog.Logger, next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, ".wasm") {
			w.Header().Set("Content-Type", "application/wasm")
		}
		log.Info("request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	}
}
