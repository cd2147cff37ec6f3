package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"medtrack/internal/domain"
	"medtrack/internal/reminder"
	"medtrack/internal/service"
)

type medicationReq struct {
	Name              string              `json:"name" binding:"required"`
	Dosage            string              `json:"dosage" binding:"required"`
	Form              string              `json:"form"`
	Frequency         domain.Frequency    `json:"frequency" binding:"required"`
	Times             []string            `json:"times"`
	Stock             int                 `json:"stock"`
	LowStockThreshold *int                `json:"lowStockThreshold"`
	Instructions      string              `json:"instructions"`
	StartDate         string              `json:"startDate"`
	EndDate           string              `json:"endDate"`
	ImageURI          string              `json:"imageUri"`
	Active            *bool               `json:"active"`
	TakenHistory      []domain.DoseRecord `json:"takenHistory"`
}

// defaultThreshold порог низкого запаса в форме добавления
const defaultThreshold = 5

func (r medicationReq) toDomain() domain.Medication {
	m := domain.Medication{
		Name:              r.Name,
		Dosage:            r.Dosage,
		Form:              r.Form,
		Frequency:         r.Frequency,
		Times:             r.Times,
		Stock:             r.Stock,
		LowStockThreshold: defaultThreshold,
		Instructions:      r.Instructions,
		StartDate:         r.StartDate,
		EndDate:           r.EndDate,
		ImageURI:          r.ImageURI,
		Active:            true,
		TakenHistory:      r.TakenHistory,
	}
	if r.LowStockThreshold != nil {
		m.LowStockThreshold = *r.LowStockThreshold
	}
	if r.Active != nil {
		m.Active = *r.Active
	}
	return m
}

// @Summary List medications
// @Tags medications
// @Produce json
// @Success 200 {array} domain.Medication
// @Router /medications [get]
func (s *Server) listMedications(c *gin.Context) {
	list, err := s.Medications.List(c)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Add medication
// @Tags medications
// @Accept json
// @Produce json
// @Param input body medicationReq true "Medication"
// @Success 201 {object} domain.Medication
// @Failure 400 {object} map[string]string
// @Router /medications [post]
func (s *Server) createMedication(c *gin.Context) {
	var req medicationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	m, err := s.Medications.Add(c, req.toDomain())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// @Summary Get medication by id
// @Tags medications
// @Produce json
// @Param id path string true "Medication ID"
// @Success 200 {object} domain.Medication
// @Failure 404 {object} map[string]string
// @Router /medications/{id} [get]
func (s *Server) getMedication(c *gin.Context) {
	m, err := s.Medications.GetByID(c, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if m == nil {
		notFound(c, "medication")
		return
	}
	c.JSON(http.StatusOK, m)
}

// @Summary Replace medication
// @Tags medications
// @Accept json
// @Produce json
// @Param id path string true "Medication ID"
// @Param input body medicationReq true "Medication"
// @Success 200 {object} domain.Medication
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /medications/{id} [put]
func (s *Server) updateMedication(c *gin.Context) {
	var req medicationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	cur, err := s.Medications.GetByID(c, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if cur == nil {
		notFound(c, "medication")
		return
	}
	m := req.toDomain()
	m.ID = cur.ID
	if req.LowStockThreshold == nil {
		m.LowStockThreshold = cur.LowStockThreshold
	}
	if m.StartDate == "" {
		m.StartDate = cur.StartDate
	}
	updated, err := s.Medications.Update(c, m)
	if err != nil {
		writeError(c, err)
		return
	}
	if updated == nil {
		notFound(c, "medication")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// @Summary Delete medication
// @Tags medications
// @Param id path string true "Medication ID"
// @Success 204
// @Router /medications/{id} [delete]
func (s *Server) deleteMedication(c *gin.Context) {
	if err := s.Medications.Delete(c, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Register a taken dose
// @Tags medications
// @Produce json
// @Param id path string true "Medication ID"
// @Success 200 {object} domain.Medication
// @Failure 404 {object} map[string]string
// @Router /medications/{id}/take-dose [post]
func (s *Server) takeDose(c *gin.Context) {
	m, err := s.Medications.TakeDose(c, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if m == nil {
		notFound(c, "medication")
		return
	}
	c.JSON(http.StatusOK, m)
}

type stockReq struct {
	Consumed int `json:"consumed"`
}

// @Summary Consume stock
// @Tags medications
// @Accept json
// @Produce json
// @Param id path string true "Medication ID"
// @Param input body stockReq true "Consumed units"
// @Success 200 {object} domain.Medication
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /medications/{id}/stock [post]
func (s *Server) updateStock(c *gin.Context) {
	var req stockReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	m, err := s.Medications.UpdateStock(c, c.Param("id"), req.Consumed)
	if err != nil {
		writeError(c, err)
		return
	}
	if m == nil {
		notFound(c, "medication")
		return
	}
	c.JSON(http.StatusOK, m)
}

type restockReq struct {
	Quantity int `json:"quantity" binding:"required"`
}

// @Summary Restock medication
// @Tags medications
// @Accept json
// @Produce json
// @Param id path string true "Medication ID"
// @Param input body restockReq true "Units added"
// @Success 200 {object} domain.Medication
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /medications/{id}/restock [post]
func (s *Server) restock(c *gin.Context) {
	var req restockReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	m, err := s.Medications.Restock(c, c.Param("id"), req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	if m == nil {
		notFound(c, "medication")
		return
	}
	c.JSON(http.StatusOK, m)
}

// @Summary Pharmacy product matching the medication
// @Tags medications
// @Produce json
// @Param id path string true "Medication ID"
// @Success 200 {object} domain.PharmacyProduct
// @Failure 404 {object} map[string]string
// @Router /medications/{id}/product [get]
func (s *Server) productForMedication(c *gin.Context) {
	p, err := s.Reconciliation.ProductForMedication(c, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if p == nil {
		notFound(c, "product")
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary Low-stock medications with delivery status
// @Tags low-stock
// @Produce json
// @Success 200 {array} domain.LowStockEntry
// @Router /low-stock [get]
func (s *Server) lowStock(c *gin.Context) {
	list, err := s.Reconciliation.LowStockWithDeliveryStatus(c)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Low-stock medications without an order on the way
// @Tags low-stock
// @Produce json
// @Success 200 {array} domain.LowStockEntry
// @Router /low-stock/needs-purchase [get]
func (s *Server) needsPurchase(c *gin.Context) {
	list, err := s.Reconciliation.NeedsPurchase(c)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Add one unit of every missing medication to the cart
// @Tags low-stock
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /low-stock/buy [post]
func (s *Server) buyMissing(c *gin.Context) {
	added, cart, err := s.Reconciliation.AddMissingToCart(c)
	if err != nil {
		writeError(c, err)
		return
	}
	if len(added) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no matching products found", "cart": cart})
		return
	}
	c.JSON(http.StatusOK, gin.H{"added": added, "cart": cart})
}

// @Summary Trigger ids of a medication
// @Tags reminders
// @Produce json
// @Param id path string true "Medication ID"
// @Success 200 {array} string
// @Router /medications/{id}/reminders [get]
func (s *Server) medicationReminders(c *gin.Context) {
	ids, err := s.Reminders.TriggerIDs(c, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	c.JSON(http.StatusOK, ids)
}

// @Summary Reschedule reminders of a medication
// @Tags reminders
// @Produce json
// @Param id path string true "Medication ID"
// @Success 200 {array} string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /medications/{id}/reminders [post]
func (s *Server) rescheduleReminders(c *gin.Context) {
	m, err := s.Medications.GetByID(c, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if m == nil {
		notFound(c, "medication")
		return
	}
	// inactive medications keep no live reminders
	if !m.Active {
		writeError(c, fmt.Errorf("%w: medication %s is inactive", service.ErrInvalidState, m.ID))
		return
	}
	ids, err := s.Reminders.ScheduleForMedication(c, reminder.Target{ID: m.ID, Name: m.Name, Times: m.Times})
	if err != nil {
		writeError(c, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	c.JSON(http.StatusOK, ids)
}

// @Summary Pending reminder triggers
// @Tags reminders
// @Produce json
// @Success 200 {array} reminder.Trigger
// @Router /reminders [get]
func (s *Server) pendingReminders(c *gin.Context) {
	if s.Scheduler == nil {
		c.JSON(http.StatusOK, []reminder.Trigger{})
		return
	}
	c.JSON(http.StatusOK, s.Scheduler.Pending())
}

// @Summary Cancel every reminder
// @Tags reminders
// @Success 204
// @Router /reminders [delete]
func (s *Server) cancelAllReminders(c *gin.Context) {
	if err := s.Reminders.CancelAll(c); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
