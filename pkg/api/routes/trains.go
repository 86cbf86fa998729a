package routes

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/railnext/railnext/pkg/selection"
	"github.com/railnext/railnext/pkg/timetable"
	"github.com/railnext/railnext/pkg/trainfinder"
	"github.com/rs/zerolog/log"
)

type trainsResponse struct {
	Success    bool                     `json:"success"`
	Data       []*timetable.TrainRecord `json:"data"`
	TotalCount int                      `json:"total_count"`
	Policy     selection.PolicyTag      `json:"policy,omitempty"`
	Timestamp  string                   `json:"timestamp"`
	Message    string                   `json:"message,omitempty"`
}

func TrainsRouter(router fiber.Router, finder *trainfinder.Finder) {
	router.Get("/json", func(c *fiber.Ctx) error {
		return getTrains(c, finder)
	})
}

func getTrains(c *fiber.Ctx, finder *trainfinder.Finder) error {
	pair := trainfinder.StationPair{
		SourceName:      c.Query("src_name"),
		SourceCode:      c.Query("src_code"),
		DestinationName: c.Query("dst_name"),
		DestinationCode: c.Query("dst_code"),
	}

	if err := pair.Validate(); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	now := time.Now()

	result, err := finder.NextTrains(c.Context(), pair, now)

	if errors.Is(err, trainfinder.ErrInvalidStations) {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Invalid station codes",
		})
	}

	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch trains")

		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Failed to fetch train data from upstream",
		})
	}

	response := trainsResponse{
		Success:    true,
		Data:       result.Trains,
		TotalCount: len(result.Trains),
		Policy:     result.Policy,
		Timestamp:  now.Format(time.RFC3339),
	}

	if len(result.Trains) == 0 {
		response.Message = "No trains found between the specified stations"
	}

	return c.JSON(response)
}
