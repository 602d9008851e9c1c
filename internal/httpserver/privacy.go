package httpserver

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

var privacyTemplate = template.Must(template.New("privacy").Parse(`<html>
    <head><title>Privacy Policy</title></head>
    <body>
        <h1>Privacy Policy</h1>
        <p>This app collects lead data (name, email, phone) from Meta Lead Ads and sends WhatsApp notifications.</p>
        <p>Data is not shared or stored beyond the immediate usage for communication.</p>
        <p>Contact us for concerns: {{.Contact}}</p>
    </body>
</html>
`))

// privacy serves the policy page the app review requires.
// @Summary Privacy policy
// @Tags Pages
// @Produce html
// @Success 200 {string} string "HTML page"
// @Router /privacy [get]
func (srv HTTPServer) privacy(c *gin.Context) {
	c.HTML(http.StatusOK, privacyTemplate.Name(), gin.H{"Contact": srv.privacyContact})
}
