// Package http serves the static church content: contact card, weekly
// service schedule, and testimonials. The data changes rarely enough that
// it lives in code, as it did on the original site.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ChurchInfo struct {
	Name                 string `json:"name"`
	Location             string `json:"location"`
	Address              string `json:"address"`
	PastorName           string `json:"pastor_name"`
	PastorPhone          string `json:"pastor_phone"`
	PastorEmail          string `json:"pastor_email"`
	PastorAlternateEmail string `json:"pastor_alternate_email"`
}

type ServiceSchedule struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Time        string `json:"time"`
	Day         string `json:"day"`
	Description string `json:"description"`
}

type Testimonial struct {
	Name string `json:"name"`
	Text string `json:"text"`
	Role string `json:"role"`
}

type ChurchHandler struct{}

func NewChurchHandler() *ChurchHandler {
	return &ChurchHandler{}
}

func (h *ChurchHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/church", h.info)
	router.GET("/services", h.services)
	router.GET("/testimonials", h.testimonials)
}

// @Summary Church information
// @Tags church
// @Produce json
// @Success 200 {object} ChurchInfo "Contact card"
// @Router /church [get]
func (h *ChurchHandler) info(c *gin.Context) {
	c.JSON(http.StatusOK, ChurchInfo{
		Name:                 "Iglesia Bautista Yaguita de Pastor",
		Location:             "Santiago, République Dominicaine",
		Address:              "Avenida Nunez de Carcerez #9, Santiago RD",
		PastorName:           "Pasteur Smith Dumont",
		PastorPhone:          "+1 (829) 295-5254",
		PastorEmail:          "ibautistayaguitadelpastor@gmail.com",
		PastorAlternateEmail: "Smithdumont_3@hotmail.com",
	})
}

// @Summary Weekly service schedule
// @Tags church
// @Produce json
// @Success 200 {array} ServiceSchedule "Services"
// @Router /services [get]
func (h *ChurchHandler) services(c *gin.Context) {
	c.JSON(http.StatusOK, []ServiceSchedule{
		{ID: 1, Name: "Culte du Dimanche Matin", Time: "09:00 AM", Day: "Dimanche", Description: "Service principal avec prédication et louange"},
		{ID: 2, Name: "École du Dimanche", Time: "08:00 AM", Day: "Dimanche", Description: "Étude biblique pour tous les âges"},
		{ID: 3, Name: "Culte du Mercredi", Time: "19:00 PM", Day: "Mercredi", Description: "Service de prière et étude biblique"},
		{ID: 4, Name: "Culte des Jeunes", Time: "18:00 PM", Day: "Vendredi", Description: "Service dédié aux jeunes et adolescents"},
	})
}

// @Summary Testimonials
// @Tags church
// @Produce json
// @Success 200 {array} Testimonial "Testimonials"
// @Router /testimonials [get]
func (h *ChurchHandler) testimonials(c *gin.Context) {
	c.JSON(http.StatusOK, []Testimonial{
		{Name: "Maria Rodriguez", Role: "Membre fidèle", Text: "Cette église a transformé ma vie. L'amour et le soutien de la communauté sont exceptionnels."},
		{Name: "Juan Carlos Herrera", Role: "Bénéficiaire FEPROBA", Text: "Grâce à FEPROBA, j'ai pu acquérir des compétences qui ont changé mon avenir professionnel."},
		{Name: "Carmen Santos", Role: "Diplômée ISL", Text: "L'Institut ISL m'a préparé spirituellement et académiquement pour servir dans le ministère avec excellence."},
	})
}
