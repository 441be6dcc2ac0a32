package main

import (
	"context"
	"errors"
	"formcaptcha/internal/app"
	"formcaptcha/internal/app/deps"
	"formcaptcha/internal/app/services"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	dl "formcaptcha/internal/core/domain/logging"
)

const shutdownTimeout = 20 * time.Second

func main() {
	d, shutdownDeps := deps.InitDeps()
	s := services.InitServices(d)
	server := app.InitHttpServer(d, s)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go serve(server, d)

	<-ctx.Done()
	d.Logger.Info(context.Background(), "Stop signal received.")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		d.Logger.Error(shutdownCtx, "Could not shut down HTTP server gracefully.", dl.Entry("err", err))
	}
	shutdownDeps()
	d.Logger.Info(shutdownCtx, "HTTP server has shut down.")
}

func serve(server *http.Server, d *deps.Deps) {
	d.Logger.Info(
		context.Background(),
		"HTTP server has started.",
		dl.Entry("address", server.Addr),
		dl.Entry("isTestMode", d.Config.IsTestMode),
		dl.Entry("captchaMode", d.Config.CaptchaMode.String()),
	)
	err := server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic(err)
	}
}
