package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"golang.org/x/text/language"

	"github.com/jhoicas/tevo-storefront/internal/application/account"
	"github.com/jhoicas/tevo-storefront/internal/application/admin"
	"github.com/jhoicas/tevo-storefront/internal/application/cart"
	"github.com/jhoicas/tevo-storefront/internal/application/catalog"
	"github.com/jhoicas/tevo-storefront/internal/application/checkout"
	"github.com/jhoicas/tevo-storefront/internal/application/orders"
	"github.com/jhoicas/tevo-storefront/internal/application/present"
	"github.com/jhoicas/tevo-storefront/internal/application/session"
	"github.com/jhoicas/tevo-storefront/internal/application/workflow"
	"github.com/jhoicas/tevo-storefront/internal/infrastructure/gateway"
	infrapdf "github.com/jhoicas/tevo-storefront/internal/infrastructure/pdf"
	"github.com/jhoicas/tevo-storefront/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/tevo-storefront/internal/interfaces/http"
	"github.com/jhoicas/tevo-storefront/pkg/config"
	"github.com/jhoicas/tevo-storefront/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("api", cfg.API.BaseURL).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	kv, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento local")
	}
	defer kv.Close()

	// Sin navegador: el cambio de pantalla se registra y el guard redirige en la siguiente petición.
	nav := session.NavigatorFunc(func(path string) {
		log.Info().Str("to", path).Msg("navegación")
	})
	sess, err := session.New(ctx, kv, nav, log)
	if err != nil {
		log.Fatal().Err(err).Msg("restaurar sesión")
	}

	if err := sess.Follow(ctx); err != nil {
		log.Fatal().Err(err).Msg("observar sesión")
	}

	client := gateway.New(gateway.Config{BaseURL: cfg.API.BaseURL, Timeout: cfg.API.Timeout}, sess, log)
	client.OnAuthFailure(func(ev gateway.AuthFailure) {
		log.Warn().Str("code", ev.Code).Str("path", ev.Path).Msg("sesión expirada")
		sess.Expire()
	})

	// Contador del carrito: sigue al usuario de la sesión.
	cartCount := cart.NewCountWatcher(kv, log)
	defer cartCount.Stop()
	follow := func(s session.Session) {
		subject := ""
		if s.Identity != nil {
			subject = s.Identity.Subject
		}
		if err := cartCount.Follow(ctx, subject); err != nil {
			log.Error().Err(err).Msg("observar carrito")
		}
	}
	follow(sess.Current())
	unsubscribe := sess.OnChange(follow)
	defer unsubscribe()

	v := workflow.NewValidator()
	prices := present.NewPriceFormatter(language.Spanish)
	cat := catalog.New(client, log)
	cartStore := cart.NewStore(kv, sess, log)
	history := orders.NewHistory(client, log)
	receipts := infrapdf.NewReceiptGenerator(cfg.App.Name, "http://"+cfg.HTTP.Addr(), prices)

	delay := cfg.UI.BannerDelay
	adminHandler := httpRouter.NewAdminHandler(httpRouter.AdminScreens{
		Products: admin.NewProductsScreen(client, v, delay, log),
		Roles:    admin.NewRolesScreen(client, v, delay, log),
		Users:    admin.NewUsersScreen(client, client, delay, log),
		Orders:   admin.NewOrdersScreen(client, v, delay, log),
	}, client, client, prices)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.API.Timeout + time.Second*5,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "TEvoSales Storefront",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Session:  sess,
		Auth:     httpRouter.NewAuthHandler(account.NewService(client, sess, v, log), sess),
		Products: httpRouter.NewProductHandler(cat, sess, prices),
		Cart:     httpRouter.NewCartHandler(cartStore, cartCount, cat, checkout.New(cartStore, client, v, log), prices),
		Orders:   httpRouter.NewOrderHandler(history, receipts, prices),
		Admin:    adminHandler,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	stop()

	log.Info().Msg("aplicación detenida")
}
