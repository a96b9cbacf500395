package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"github.com/tesseract-nexus/storefront-client/internal/cartapi"
	"github.com/tesseract-nexus/storefront-client/internal/cartstore"
	"github.com/tesseract-nexus/storefront-client/internal/config"
	"github.com/tesseract-nexus/storefront-client/internal/storage"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/cartctl/main.go <command> [args]")
		fmt.Println("Commands:")
		fmt.Println("  show                                  print the current cart")
		fmt.Println("  add <product-id> [variant-id] [qty]   add a product to the cart")
		fmt.Println("  remove <item-id>                      remove a cart line")
		fmt.Println("  validate                              re-check availability and prices")
		fmt.Println("  clear                                 empty the cart")
		os.Exit(1)
	}
	command := os.Args[1]

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if cfg.CartService.BaseURL == "" {
		fmt.Fprintln(os.Stderr, "CART_SERVICE_URL is required")
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// Local persistence under the user cache dir
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = os.TempDir()
	}
	fileStore, err := storage.NewFileStore(filepath.Join(cacheDir, "cartctl"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open local storage: %v\n", err)
		os.Exit(1)
	}

	client := cartapi.NewClient(cfg.CartService, logger)
	store := cartstore.New(client, fileStore, logger)

	ctx := context.Background()
	store.Hydrate(ctx)

	switch command {
	case "show":
		if err := store.FetchCart(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to fetch cart: %v\n", err)
			os.Exit(1)
		}
		printCart(store)

	case "add":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: cartctl add <product-id> [variant-id] [qty]")
			os.Exit(1)
		}
		req := cartapi.AddItemRequest{ProductID: os.Args[2], Quantity: 1}
		if len(os.Args) > 3 {
			req.VariantID = os.Args[3]
		}
		if len(os.Args) > 4 {
			qty, err := strconv.Atoi(os.Args[4])
			if err != nil {
				fmt.Fprintf(os.Stderr, "Invalid quantity: %v\n", err)
				os.Exit(1)
			}
			req.Quantity = qty
		}
		if err := store.AddItem(ctx, req); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to add item: %v\n", err)
			os.Exit(1)
		}
		printCart(store)

	case "remove":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: cartctl remove <item-id>")
			os.Exit(1)
		}
		if err := store.RemoveItem(ctx, os.Args[2]); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to remove item: %v\n", err)
			os.Exit(1)
		}
		printCart(store)

	case "validate":
		result, err := store.ValidateCart(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
			os.Exit(1)
		}
		if result == nil {
			fmt.Println("Validation already in progress")
			return
		}
		fmt.Printf("Validated %d items\n", len(result.Items))
		printCart(store)

	case "clear":
		if err := store.ClearCart(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to clear cart: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Cart cleared")

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		os.Exit(1)
	}
}

func printCart(store *cartstore.Store) {
	snap := store.Snapshot()
	if snap.Cart == nil {
		fmt.Println("Cart is empty")
		return
	}
	fmt.Printf("Cart %s (%d items)\n", snap.Cart.ID, store.ItemCount())
	for _, item := range snap.Cart.Items {
		status := ""
		if item.Status != "" {
			status = "  [" + string(item.Status) + "]"
		}
		fmt.Printf("  %s  %s x%d  %.2f%s\n", item.ID, item.Title, item.Quantity, item.Price, status)
	}
	fmt.Printf("Subtotal: %.2f  Total: %.2f\n", snap.Cart.Subtotal, snap.Cart.Total)
	if store.HasIssues() {
		fmt.Println("⚠️  Cart has unavailable items or price changes")
	}
}
