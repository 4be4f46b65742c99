package cmd

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"scribe/internal/apihandlers"
)

var (
	serveAddr string // Listen address
	servePort string // Listen port
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the stateless transcription HTTP API",
	Long: `Starts an HTTP server with two endpoints: POST / starts a transcription
job (binary upload or S3 reference, selected by content type) and
GET /:job_name checks its status with a single poll. No job state is held
in the server between calls; the job token is the only correlation handle.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		router := gin.Default() // Includes logger and recovery middleware

		// Permissive CORS, mirroring what the API promises every response.
		router.Use(cors.New(cors.Config{
			AllowAllOrigins: true,
			AllowMethods:    []string{http.MethodPost, http.MethodGet, http.MethodOptions},
			AllowHeaders:    []string{"Content-Type", "Content-Transfer-Encoding"},
		}))

		apiHandler := apihandlers.NewAPIHandler(appInstance)
		router.POST("/", apiHandler.StartTranscriptionHandler)
		router.GET("/:job_name", apiHandler.StatusHandler)

		listenAddr := fmt.Sprintf("%s:%s", serveAddr, servePort)
		log.Infof("Starting transcription API server on http://%s", listenAddr)

		// router.Run blocks unless an error occurs
		if err := router.Run(listenAddr); err != nil {
			return fmt.Errorf("failed to run API server: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "localhost", "Address to listen on (e.g., '0.0.0.0' for all interfaces)")
	serveCmd.Flags().StringVar(&servePort, "port", "8080", "Port to listen on")
}
