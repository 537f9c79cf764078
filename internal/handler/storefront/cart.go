package storefront

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lorean-shop/lorean/internal/cart"
	"github.com/lorean-shop/lorean/internal/domain"
	"github.com/lorean-shop/lorean/internal/handler"
	"github.com/lorean-shop/lorean/internal/repository"
)

// CartHandler manages the session cart and wishlist.
type CartHandler struct {
	repo   repository.Querier
	store  cart.Store
	logger zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(repo repository.Querier, store cart.Store, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		repo:   repo,
		store:  store,
		logger: logger,
	}
}

// RegisterRoutes mounts the cart and wishlist routes on the storefront group.
func (h *CartHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/cart", h.GetCart)
	g.POST("/cart/items", h.AddItem)
	g.PATCH("/cart/items/:productID", h.AdjustQuantity)
	g.DELETE("/cart/items/:productID", h.RemoveItem)

	g.GET("/wishlist", h.GetWishlist)
	g.POST("/wishlist/items", h.AddWishlistItem)
	g.DELETE("/wishlist/items/:productID", h.RemoveWishlistItem)
}

// cartView adds the derived totals to the stored items.
type cartView struct {
	Items     []cart.Item `json:"items"`
	Subtotal  float64     `json:"subtotal"`
	ItemCount int32       `json:"item_count"`
}

func newCartView(c *cart.Cart) cartView {
	items := c.Items
	if items == nil {
		items = []cart.Item{}
	}
	return cartView{
		Items:     items,
		Subtotal:  c.Subtotal(),
		ItemCount: c.ItemCount(),
	}
}

func (h *CartHandler) GetCart(c echo.Context) error {
	current, err := h.store.LoadCart(c.Request().Context(), sessionID(c))
	if err != nil {
		return handler.RespondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, newCartView(current))
}

type addItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int32  `json:"quantity"`
}

func (h *CartHandler) AddItem(c echo.Context) error {
	var req addItemRequest
	if err := c.Bind(&req); err != nil {
		return handler.RespondError(c, h.logger, domain.Invalid("cart.add", "malformed request body"))
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return handler.RespondError(c, h.logger, domain.Invalid("cart.add", "invalid product id"))
	}

	ctx := c.Request().Context()
	product, err := h.repo.GetProduct(ctx, productID)
	if err != nil || !product.Active {
		return handler.RespondError(c, h.logger, domain.ErrProductNotFound)
	}

	session := sessionID(c)
	current, err := h.store.LoadCart(ctx, session)
	if err != nil {
		return handler.RespondError(c, h.logger, err)
	}

	current.Add(product, req.Quantity)
	if err := h.store.SaveCart(ctx, session, current); err != nil {
		return handler.RespondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, newCartView(current))
}

type adjustQuantityRequest struct {
	Delta int32 `json:"delta"`
}

// AdjustQuantity applies a signed quantity delta, clamped to a floor of 1.
// Decrementing can never remove the line; DELETE is the only removal path.
func (h *CartHandler) AdjustQuantity(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("productID"))
	if err != nil {
		return handler.RespondError(c, h.logger, domain.Invalid("cart.adjust", "invalid product id"))
	}
	var req adjustQuantityRequest
	if err := c.Bind(&req); err != nil {
		return handler.RespondError(c, h.logger, domain.Invalid("cart.adjust", "malformed request body"))
	}

	ctx := c.Request().Context()
	session := sessionID(c)
	current, err := h.store.LoadCart(ctx, session)
	if err != nil {
		return handler.RespondError(c, h.logger, err)
	}

	current.SetQuantity(productID, req.Delta)
	if err := h.store.SaveCart(ctx, session, current); err != nil {
		return handler.RespondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, newCartView(current))
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("productID"))
	if err != nil {
		return handler.RespondError(c, h.logger, domain.Invalid("cart.remove", "invalid product id"))
	}

	ctx := c.Request().Context()
	session := sessionID(c)
	current, err := h.store.LoadCart(ctx, session)
	if err != nil {
		return handler.RespondError(c, h.logger, err)
	}

	current.Remove(productID)
	if err := h.store.SaveCart(ctx, session, current); err != nil {
		return handler.RespondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, newCartView(current))
}

type wishlistView struct {
	Items []cart.WishlistItem `json:"items"`
}

func newWishlistView(w *cart.Wishlist) wishlistView {
	items := w.Items
	if items == nil {
		items = []cart.WishlistItem{}
	}
	return wishlistView{Items: items}
}

func (h *CartHandler) GetWishlist(c echo.Context) error {
	list, err := h.store.LoadWishlist(c.Request().Context(), sessionID(c))
	if err != nil {
		return handler.RespondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, newWishlistView(list))
}

func (h *CartHandler) AddWishlistItem(c echo.Context) error {
	var req addItemRequest
	if err := c.Bind(&req); err != nil {
		return handler.RespondError(c, h.logger, domain.Invalid("wishlist.add", "malformed request body"))
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return handler.RespondError(c, h.logger, domain.Invalid("wishlist.add", "invalid product id"))
	}

	ctx := c.Request().Context()
	product, err := h.repo.GetProduct(ctx, productID)
	if err != nil || !product.Active {
		return handler.RespondError(c, h.logger, domain.ErrProductNotFound)
	}

	session := sessionID(c)
	list, err := h.store.LoadWishlist(ctx, session)
	if err != nil {
		return handler.RespondError(c, h.logger, err)
	}

	list.Add(product)
	if err := h.store.SaveWishlist(ctx, session, list); err != nil {
		return handler.RespondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, newWishlistView(list))
}

func (h *CartHandler) RemoveWishlistItem(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("productID"))
	if err != nil {
		return handler.RespondError(c, h.logger, domain.Invalid("wishlist.remove", "invalid product id"))
	}

	ctx := c.Request().Context()
	session := sessionID(c)
	list, err := h.store.LoadWishlist(ctx, session)
	if err != nil {
		return handler.RespondError(c, h.logger, err)
	}

	list.Remove(productID)
	if err := h.store.SaveWishlist(ctx, session, list); err != nil {
		return handler.RespondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, newWishlistView(list))
}
