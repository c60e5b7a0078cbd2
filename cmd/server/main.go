package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"

	storefront "github.com/amara-beauty/storefront-cms"
	"github.com/amara-beauty/storefront-cms/cmd/internal/bootstrap"
	"github.com/amara-beauty/storefront-cms/internal/auth"
	"github.com/amara-beauty/storefront-cms/internal/di"
	"github.com/amara-beauty/storefront-cms/internal/identity"
	"github.com/amara-beauty/storefront-cms/pkg/interfaces"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("storefront server: %v", err)
	}
}

func run() error {
	v := bootstrap.NewViper()
	cfg := bootstrap.BuildConfig(v)

	bunDB, err := bootstrap.OpenDatabase(cfg)
	if err != nil {
		return err
	}
	defer bunDB.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if v.GetBool("database.migrate") {
		if err := storefront.RunMigrations(ctx, bunDB); err != nil {
			return err
		}
	}

	module, err := storefront.New(cfg,
		di.WithBunDB(bunDB),
		di.WithAuth(adminVerifier(v)),
	)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	if err := module.RegisterPublicRoutes(mux); err != nil {
		return err
	}
	if err := module.RegisterAdminRoutes(mux); err != nil {
		return err
	}

	server := &http.Server{
		Addr:              v.GetString("server.addr"),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// adminVerifier maps STOREFRONT_ADMIN_TOKEN onto a deterministic operator
// identity. An unset token leaves every admin route failing closed.
func adminVerifier(v *viper.Viper) interfaces.AuthService {
	email := v.GetString("admin.email")
	return auth.StaticToken(v.GetString("admin.token"), interfaces.Identity{
		UserID: identity.UUID("admin:" + email),
		Email:  email,
		Roles:  []string{"admin"},
	})
}
