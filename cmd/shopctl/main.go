// shopctl drives the storefront backend from the terminal: log in, browse
// products, edit the cart and place orders. It is the command-line
// counterpart of the original mobile screens, sharing the same service layer.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/tayyabfareed009/Ecommerce-Application/internal/api"
	"github.com/tayyabfareed009/Ecommerce-Application/internal/cart"
	"github.com/tayyabfareed009/Ecommerce-Application/internal/domain"
	"github.com/tayyabfareed009/Ecommerce-Application/internal/service"
	"github.com/tayyabfareed009/Ecommerce-Application/internal/session"
)

const (
	defaultBaseURL   = "https://ecommerce-app-three-rho.vercel.app"
	defaultUploadURL = "https://api.cloudinary.com/v1_1/dvr7nqkjv/image/upload"
	defaultPreset    = "ecommerce_app"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, cart.ErrCancelled) {
			fmt.Println("cancelled")
			return
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	viper.SetEnvPrefix("SHOPCTL")
	viper.AutomaticEnv()
	viper.SetDefault("base_url", defaultBaseURL)
	viper.SetDefault("upload_url", defaultUploadURL)
	viper.SetDefault("upload_preset", defaultPreset)
	viper.SetDefault("assume_yes", false)

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	if len(args) == 0 {
		usage()
		return nil
	}
	cmd, rest := args[0], args[1:]

	store, err := openSessionStore()
	if err != nil {
		return err
	}

	client := api.New(viper.GetString("base_url"),
		api.WithTokenSource(session.TokenSource{Store: store}))

	var confirmer cart.Confirmer = stdinConfirmer{}
	if viper.GetBool("assume_yes") {
		confirmer = cart.AutoConfirm
	}

	uploader := api.NewUploader(viper.GetString("upload_url"), viper.GetString("upload_preset"))

	auth := service.NewAuthService(client, store)
	catalog := service.NewCatalogService(client, store, uploader)
	orders := service.NewOrderService(client)
	manager := cart.NewManager(client, confirmer)

	ctx := context.Background()

	switch cmd {
	case "login":
		return cmdLogin(ctx, auth, rest)
	case "logout":
		if err := auth.Logout(ctx); err != nil {
			return err
		}
		fmt.Println("logged out")
		return nil
	case "signup":
		return cmdSignup(ctx, auth, rest)
	case "whoami":
		return cmdWhoami(ctx, auth)
	case "products":
		return cmdProducts(ctx, catalog)
	case "add":
		return cmdAdd(ctx, catalog, rest)
	case "product":
		return cmdProduct(ctx, catalog, rest)
	case "cart":
		return cmdCart(ctx, manager, rest)
	case "order":
		return cmdOrder(ctx, manager)
	case "orders":
		return cmdOrders(ctx, orders)
	case "stats":
		return cmdStats(ctx, orders)
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func openSessionStore() (session.Store, error) {
	path := viper.GetString("session_path")
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".shopctl")
		if err = os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
		path = filepath.Join(dir, "session.db")
	}
	return session.OpenSQLite(path)
}

func cmdLogin(ctx context.Context, auth *service.AuthService, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	sess, err := auth.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("logged in as %s (%s)\n", sess.Name, sess.Role)
	return nil
}

func cmdSignup(ctx context.Context, auth *service.AuthService, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ExitOnError)
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	role := fs.String("role", service.RoleCustomer, "customer or shopkeeper")
	address := fs.String("address", "", "delivery address")
	fs.Parse(args)

	err := auth.Signup(ctx, api.SignupRequest{
		Name:     *name,
		Email:    *email,
		Password: *password,
		Role:     *role,
		Address:  *address,
	})
	if err != nil {
		return err
	}
	fmt.Println("account created, you can log in now")
	return nil
}

func cmdWhoami(ctx context.Context, auth *service.AuthService) error {
	sess, err := auth.Current(ctx)
	if err != nil {
		return err
	}
	if sess.Token == "" {
		fmt.Println("not logged in")
		return nil
	}
	fmt.Printf("%s <%s> role=%s\n", sess.Name, sess.Email, sess.Role)
	return nil
}

func cmdProducts(ctx context.Context, catalog *service.CatalogService) error {
	products, err := catalog.Products(ctx)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		fmt.Println("no products")
		return nil
	}
	for _, p := range products {
		fmt.Printf("%s  %-30s %10s  stock=%d\n", p.ID, p.Name, p.Price.StringFixed(2), p.Stock)
	}
	return nil
}

func cmdAdd(ctx context.Context, catalog *service.CatalogService, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: shopctl add <product-id> [quantity]")
	}
	qty := 1
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("quantity must be an integer: %w", err)
		}
		qty = n
	}
	if err := catalog.AddToCart(ctx, args[0], qty); err != nil {
		return err
	}
	fmt.Println("added to cart")
	return nil
}

// cmdProduct covers the shopkeeper side of the catalog: creating a product
// (optionally uploading a local image first) and deleting one.
func cmdProduct(ctx context.Context, catalog *service.CatalogService, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: shopctl product <add|rm> ...")
	}
	switch args[0] {
	case "add":
		fs := flag.NewFlagSet("product add", flag.ExitOnError)
		name := fs.String("name", "", "product name")
		price := fs.String("price", "", "unit price, e.g. 9.99")
		stock := fs.Int("stock", 0, "units in stock")
		category := fs.String("category", "", "category")
		description := fs.String("description", "", "description")
		imagePath := fs.String("image", "", "path to a local image file")
		fs.Parse(args[1:])

		unitPrice, err := decimal.NewFromString(*price)
		if err != nil {
			return fmt.Errorf("price must be a decimal number: %w", err)
		}

		var image io.Reader
		var imageName string
		if *imagePath != "" {
			f, errOpen := os.Open(*imagePath)
			if errOpen != nil {
				return errOpen
			}
			defer f.Close()
			image = f
			imageName = filepath.Base(*imagePath)
		}

		created, err := catalog.CreateProduct(ctx, domain.Product{
			Name:        *name,
			Price:       unitPrice,
			Stock:       *stock,
			Category:    *category,
			Description: *description,
		}, imageName, image)
		if err != nil {
			return err
		}
		fmt.Printf("product created, id %s\n", created.ID)
		return nil
	case "rm":
		if len(args) != 2 {
			return fmt.Errorf("usage: shopctl product rm <product-id>")
		}
		if err := catalog.DeleteProduct(ctx, args[1]); err != nil {
			return err
		}
		fmt.Println("product deleted")
		return nil
	default:
		return fmt.Errorf("unknown product subcommand %q", args[0])
	}
}

func cmdCart(ctx context.Context, manager *cart.Manager, args []string) error {
	if err := manager.Load(ctx); err != nil {
		return err
	}

	if len(args) > 0 {
		switch args[0] {
		case "set":
			if len(args) != 3 {
				return fmt.Errorf("usage: shopctl cart set <item-id> <quantity>")
			}
			qty, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("quantity must be an integer: %w", err)
			}
			if err = manager.SetQuantity(ctx, args[1], qty); err != nil {
				return err
			}
		case "rm":
			if len(args) != 2 {
				return fmt.Errorf("usage: shopctl cart rm <item-id>")
			}
			if err := manager.Remove(ctx, args[1]); err != nil {
				return err
			}
		case "clear":
			if err := manager.Clear(ctx); err != nil {
				if errors.Is(err, cart.ErrCancelled) {
					return err
				}
				slog.Warn("remote clear failed, local cart emptied anyway", "error", err)
			}
		default:
			return fmt.Errorf("unknown cart subcommand %q", args[0])
		}
	}

	items := manager.Items()
	if len(items) == 0 {
		fmt.Println("cart is empty")
		return nil
	}
	for _, li := range items {
		fmt.Printf("%s  %-30s %3d x %8s = %10s\n",
			li.ID, li.Name, li.Quantity, li.UnitPrice.StringFixed(2), li.Subtotal().StringFixed(2))
	}
	fmt.Printf("total: %s\n", manager.Total().StringFixed(2))
	return nil
}

func cmdOrder(ctx context.Context, manager *cart.Manager) error {
	if err := manager.Load(ctx); err != nil {
		return err
	}
	orderID, err := manager.PlaceOrder(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("order placed, id %s\n", orderID)
	return nil
}

func cmdOrders(ctx context.Context, orders *service.OrderService) error {
	list, err := orders.History(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("no orders")
		return nil
	}
	for _, o := range list {
		fmt.Printf("%s  %-12s %10s\n", o.ID, o.Status, o.TotalAmount.StringFixed(2))
	}
	return nil
}

func cmdStats(ctx context.Context, orders *service.OrderService) error {
	stats, err := orders.Stats(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("orders: %d\nrevenue: %s\npending: %d\n",
		stats.TotalOrders, stats.TotalRevenue.StringFixed(2), stats.PendingOrders)
	return nil
}

// stdinConfirmer asks on the terminal before destructive cart operations.
type stdinConfirmer struct{}

func (stdinConfirmer) Confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func usage() {
	fmt.Println(`usage: shopctl <command>

  login -email ... -password ...   authenticate and store the session
  logout                           clear the stored session
  signup -name ... -email ...      create an account
  whoami                           show the stored session
  products                         list the catalog
  product add|rm ...               create or delete a product (shopkeeper)
  add <product-id> [qty]           add a product to the cart
  cart [set|rm|clear ...]          show or edit the cart
  order                            place an order for the current cart
  orders                           list order history
  stats                            seller dashboard summary

environment: SHOPCTL_BASE_URL, SHOPCTL_SESSION_PATH, SHOPCTL_ASSUME_YES,
             SHOPCTL_UPLOAD_URL, SHOPCTL_UPLOAD_PRESET`)
}
