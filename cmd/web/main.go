package main

import (
	_ "embed"
	"html/template"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/ballrush/internal/config"
	loopconfig "github.com/tomz197/ballrush/internal/loop/config"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var htmlPage string

var pageTemplate = template.Must(template.New("index").Parse(htmlPage))

// pageData fills the landing page template.
type pageData struct {
	SSHHost        string
	SSHPort        string
	PointsPerLevel int
}

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          "ballrush-web",
		ReportTimestamp: true,
	})

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	data := pageData{
		SSHHost:        config.GetEnv("SSH_DISPLAY_HOST", "your-server.com"),
		SSHPort:        config.GetEnv("SSH_DISPLAY_PORT", "2222"),
		PointsPerLevel: loopconfig.Default().PointsPerLevel,
	}

	srv := &http.Server{
		Addr:              net.JoinHostPort(host, port),
		Handler:           newHandler(data, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting web server", "addr", "http://"+srv.Addr)
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal("server error", "err", err)
	}
}

// newHandler serves the landing page at the root path.
func newHandler(data pageData, logger *log.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := pageTemplate.Execute(w, data); err != nil {
			logger.Error("render landing page", "err", err)
		}
	})
	return mux
}
