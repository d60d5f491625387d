package main

import (
	"log"
	"strings"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/domain/pricing"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/notifier"
	"app/internal/server"
	"app/internal/usecase"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// 配送料ポリシーを設定から組み立てる
func deliveryPolicyFromConfig(cfg config.Config) pricing.DeliveryPolicy {
	policy := pricing.DeliveryPolicy{
		Fee:           decimal.NewFromInt(cfg.DeliveryFee),
		FreeThreshold: decimal.NewFromInt(cfg.FreeDeliveryThreshold),
	}

	for _, s := range strings.Split(cfg.DeliveryFeeMethods, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		policy.FeeMethods = append(policy.FeeMethods, model.DeliveryMethod(s))
	}

	return policy
}

func main() {
	//.envはあれば読む（本番は実環境変数）
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		panic(err)
	}

	if err := gormDB.AutoMigrate(
		&model.Category{},
		&model.Product{},
		&model.Cart{},
		&model.CartItem{},
		&model.PromoCode{},
		&model.Order{},
		&model.OrderItem{},
		&model.ContactMessage{},
		&model.User{},
	); err != nil {
		panic(err)
	}

	//Repository（GORM実装）生成
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	cartItemRepo := infraRepo.NewCartItemGormRepository(gormDB)
	promoRepo := infraRepo.NewPromoGormRepository(gormDB)
	contactRepo := infraRepo.NewContactGormRepository(gormDB)
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	inventoryRepo := infraRepo.NewInventoryGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//通知先。トークン未設定なら何もしない実装に切り替える
	var notify notifier.Notifier = notifier.Nop{}
	if cfg.TelegramBotToken != "" && cfg.TelegramChatID != "" {
		notify = notifier.NewTelegramNotifier(cfg.TelegramBotToken, cfg.TelegramChatID, 5*time.Second)
	}

	policy := deliveryPolicyFromConfig(cfg)

	//Usecase生成
	authUC := usecase.NewAuthUsecase(userRepo, cfg.JWTSecret)
	catalogUC := usecase.NewCatalogUsecase(productRepo, categoryRepo)
	adminCatalogUC := usecase.NewAdminCatalogUsecase(productRepo, categoryRepo, inventoryRepo)
	cartUC := usecase.NewCartUsecase(cartRepo, cartItemRepo, productRepo, promoRepo, policy)
	promoUC := usecase.NewPromoUsecase(cartRepo, cartItemRepo, productRepo, promoRepo, cartUC)
	checkoutUC := usecase.NewCheckoutUsecase(txManager, notify, policy)
	orderUC := usecase.NewOrderUsecase(txManager)
	contactUC := usecase.NewContactUsecase(contactRepo, notify)

	//Handler生成
	h := server.Handlers{
		Auth:         handler.NewAuthHandler(authUC),
		Product:      handler.NewProductHandler(catalogUC),
		AdminProduct: handler.NewAdminProductHandler(adminCatalogUC),
		Cart:         handler.NewCartHandler(cartUC),
		Promo:        handler.NewPromoHandler(promoUC),
		Checkout:     handler.NewCheckoutHandler(checkoutUC),
		Order:        handler.NewOrderHandler(orderUC),
		Contact:      handler.NewContactHandler(contactUC),
	}

	//Server起動
	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	if err := server.Start(addr, cfg, h); err != nil {
		panic(err)
	}
}
