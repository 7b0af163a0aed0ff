package api

import (
	"net/http"

	"ultrabot/server/internal/models"

	"github.com/gin-gonic/gin"
)

// --- Property management ---

func (h *Handler) AdminListProperties(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.GetProperties())
}

func (h *Handler) AdminCreateProperty(c *gin.Context) {
	var property models.Property
	if err := c.ShouldBindJSON(&property); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if property.Name == "" || property.Location == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name and location are required"})
		return
	}

	created := h.store.AddProperty(property)
	h.assistant.Reconfigure(h.store.GetProperties())
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) AdminUpdateProperty(c *gin.Context) {
	var property models.Property
	if err := c.ShouldBindJSON(&property); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	id := c.Param("id")
	if !h.store.UpdateProperty(id, property) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}
	h.assistant.Reconfigure(h.store.GetProperties())

	property.ID = id
	c.JSON(http.StatusOK, property)
}

func (h *Handler) AdminDeleteProperty(c *gin.Context) {
	h.store.DeleteProperty(c.Param("id"))
	h.assistant.Reconfigure(h.store.GetProperties())
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *Handler) AdminGenerateDescription(c *gin.Context) {
	var draft models.Property
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if draft.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A listing title is required"})
		return
	}

	description := h.composer.ListingDescription(c.Request.Context(), draft)
	c.JSON(http.StatusOK, gin.H{"description": description})
}

// --- Lead management ---

func (h *Handler) AdminListLeads(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.GetLeads())
}

type leadUpdateRequest struct {
	Status *models.LeadStatus `json:"status"`
	Score  *models.LeadScore  `json:"score"`
}

func (h *Handler) AdminUpdateLead(c *gin.Context) {
	var req leadUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	id := c.Param("id")
	ok := h.store.UpdateLead(id, func(l *models.Lead) {
		if req.Status != nil {
			l.Status = *req.Status
		}
		if req.Score != nil {
			l.Score = *req.Score
		}
	})
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

func (h *Handler) AdminDeleteLead(c *gin.Context) {
	h.store.DeleteLead(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

type noteRequest struct {
	Text string `json:"text"`
}

func (h *Handler) AdminAddLeadNote(c *gin.Context) {
	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Note text is required"})
		return
	}

	note, ok := h.store.AddLeadNote(c.Param("id"), req.Text)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
		return
	}
	c.JSON(http.StatusCreated, note)
}

// AdminFollowUp drafts a personalized outreach message from the lead's
// conversation summary.
func (h *Handler) AdminFollowUp(c *gin.Context) {
	id := c.Param("id")
	var lead *models.Lead
	for _, l := range h.store.GetLeads() {
		if l.ID == id {
			lead = &l
			break
		}
	}
	if lead == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
		return
	}

	note := h.composer.FollowUpNote(c.Request.Context(), lead.Summary)
	c.JSON(http.StatusOK, gin.H{"note": note})
}

// --- Location management ---

func (h *Handler) AdminListLocations(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.GetLocations())
}

type locationRequest struct {
	Name string `json:"name"`
}

func (h *Handler) AdminAddLocation(c *gin.Context) {
	var req locationRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Location name is required"})
		return
	}

	h.store.AddLocation(req.Name)
	c.JSON(http.StatusCreated, gin.H{"locations": h.store.GetLocations()})
}

// AdminDeleteLocation refuses while listings still reference the location,
// so the catalog and the location list cannot drift apart.
func (h *Handler) AdminDeleteLocation(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Location name is required"})
		return
	}

	if n := h.store.PropertiesReferencing(name); n > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Location is referenced by existing properties"})
		return
	}

	h.store.DeleteLocation(name)
	c.JSON(http.StatusOK, gin.H{"locations": h.store.GetLocations()})
}
