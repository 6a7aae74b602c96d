package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"sync"

	"drink-shop/models"
	"drink-shop/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler exposes one session over HTTP. Requests are serialized with mu because
// the session itself does no locking.
type Handler struct {
	mu      sync.Mutex
	session *services.Session
	log     *zap.Logger
}

func NewHandler(session *services.Session, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{session: session, log: log}
}

type menuItemResponse struct {
	Index    int    `json:"index"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Category string `json:"category"`
}

type categoryResponse struct {
	Category string             `json:"category"`
	Items    []menuItemResponse `json:"items"`
}

type lineResponse struct {
	Name      string `json:"name"`
	Count     int    `json:"count"`
	UnitPrice string `json:"unit_price"`
	LineTotal string `json:"line_total"`
}

type cartResponse struct {
	Entries  []menuItemResponse `json:"entries"`
	Lines    []lineResponse     `json:"lines"`
	Total    string             `json:"total"`
	Count    int                `json:"count"`
	Customer string             `json:"customer,omitempty"`
	Status   string             `json:"status,omitempty"`
}

type orderResponse struct {
	Record  models.OrderRecord `json:"order"`
	Receipt string             `json:"receipt"`
	Status  string             `json:"status"`
	Warning string             `json:"warning,omitempty"`
}

type addItemRequest struct {
	ItemIndex *int `json:"item_index" binding:"required"`
}

type customerRequest struct {
	Name string `json:"name"`
}

type orderRequest struct {
	CustomerName string `json:"customer_name"`
}

func (h *Handler) itemResponse(it models.MenuItem) menuItemResponse {
	return menuItemResponse{
		Index:    h.session.Catalog().IndexOf(it.Name),
		Name:     it.Name,
		Price:    services.Money(it.Price),
		Category: it.Category,
	}
}

func (h *Handler) cart(status string) cartResponse {
	snap := h.session.Snapshot()
	resp := cartResponse{
		Entries:  make([]menuItemResponse, 0, len(snap.Entries)),
		Lines:    make([]lineResponse, 0, len(snap.Lines)),
		Total:    services.Money(snap.Total),
		Count:    snap.Count,
		Customer: h.session.CustomerName(),
		Status:   status,
	}
	for _, it := range snap.Entries {
		resp.Entries = append(resp.Entries, h.itemResponse(it))
	}
	for _, l := range snap.Lines {
		resp.Lines = append(resp.Lines, lineResponse{
			Name:      l.Name,
			Count:     l.Count,
			UnitPrice: services.Money(l.UnitPrice),
			LineTotal: services.Money(l.LineTotal),
		})
	}
	return resp
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrIndexOutOfRange):
		return http.StatusNotFound
	case errors.Is(err, services.ErrEmptyCart), errors.Is(err, services.ErrMissingCustomerName):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// ListCatalog returns every menu item in catalog order.
func (h *Handler) ListCatalog(c *gin.Context) {
	items := h.session.ListCatalog()
	resp := make([]menuItemResponse, len(items))
	for i, it := range items {
		resp[i] = menuItemResponse{Index: i, Name: it.Name, Price: services.Money(it.Price), Category: it.Category}
	}
	c.JSON(http.StatusOK, resp)
}

// ListCategories returns the menu grouped by category.
func (h *Handler) ListCategories(c *gin.Context) {
	groups := h.session.CatalogGroupedByCategory()
	resp := make([]categoryResponse, len(groups))
	for i, g := range groups {
		resp[i].Category = g.Category
		for _, it := range g.Items {
			resp[i].Items = append(resp[i].Items, h.itemResponse(it))
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetCart(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c.JSON(http.StatusOK, h.cart(""))
}

func (h *Handler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	it, err := h.session.Add(*req.ItemIndex)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": services.MessageError(err)})
		return
	}
	c.JSON(http.StatusOK, h.cart(services.MessageAdded(it)))
}

func (h *Handler) RemoveItem(c *gin.Context) {
	idx, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cart index"})
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	it, err := h.session.Remove(idx)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": services.MessageError(err)})
		return
	}
	c.JSON(http.StatusOK, h.cart(services.MessageRemoved(it)))
}

func (h *Handler) ClearCart(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c.JSON(http.StatusOK, h.cart(services.MessageClear(h.session.Clear())))
}

func (h *Handler) SetCustomer(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.session.SetCustomerName(req.Name)
	c.JSON(http.StatusOK, h.cart(services.MessageCustomer(h.session.CustomerName())))
}

// CompleteOrder finalizes the cart. The customer name in the body wins over the
// session's stored name. A failed save still returns the receipt, with a warning.
func (h *Handler) CompleteOrder(c *gin.Context) {
	var req orderRequest
	// An empty body, chunked or not, means "use the session's customer".
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	name := req.CustomerName
	if name == "" {
		name = h.session.CustomerName()
	}
	done, err := h.session.CompleteOrder(c.Request.Context(), name)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": services.MessageError(err)})
		return
	}
	resp := orderResponse{
		Record:  done.Order.Record(),
		Receipt: done.Receipt,
		Status:  services.MessageCompleted(done),
	}
	if done.SaveErr != nil {
		resp.Warning = done.SaveErr.Error()
		h.log.Warn("order returned without being saved", zap.String("order_id", done.Order.ID), zap.Error(done.SaveErr))
	}
	c.JSON(http.StatusCreated, resp)
}
