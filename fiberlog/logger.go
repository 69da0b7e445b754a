package fiberlog

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type data struct {
	start time.Time
	end   time.Time
}

type tagFunc func(c *fiber.Ctx, d *data) interface{}

var tagFuncs = map[string]tagFunc{
	TagStatus: func(c *fiber.Ctx, d *data) interface{} {
		return c.Response().StatusCode()
	},
	TagLatency: func(c *fiber.Ctx, d *data) interface{} {
		return d.end.Sub(d.start).String()
	},
	TagMethod: func(c *fiber.Ctx, d *data) interface{} {
		return c.Method()
	},
	TagPath: func(c *fiber.Ctx, d *data) interface{} {
		return c.Path()
	},
	TagIP: func(c *fiber.Ctx, d *data) interface{} {
		return c.IP()
	},
	TagRequestID: func(c *fiber.Ctx, d *data) interface{} {
		return RequestID(c)
	},
}

// RequestID returns the correlation id assigned to the request, assigning
// one if the caller did not supply an X-Request-Id header.
func RequestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("request_id").(string); ok && id != "" {
		return id
	}
	id := c.Get(fiber.HeaderXRequestID)
	if id == "" {
		id = uuid.NewString()
	}
	c.Locals("request_id", id)
	return id
}

func getFields(tags []string, c *fiber.Ctx, d *data) log.Fields {
	f := make(log.Fields)
	for _, tag := range tags {
		ft, ok := tagFuncs[tag]
		if !ok {
			continue
		}
		value := ft(c, d)
		if strValue, isStr := value.(string); isStr {
			if strValue != "" {
				f[tag] = strValue
			}
		} else {
			f[tag] = value
		}
	}
	return f
}

// New creates a new middleware handler
func New(config ...Config) fiber.Handler {
	var cfg Config
	if len(config) == 0 {
		cfg = ConfigDefault
	} else {
		cfg = config[0]
	}
	return func(c *fiber.Ctx) error {
		d := &data{start: time.Now()}
		err := c.Next()
		d.end = time.Now()
		if c.Method() == fiber.MethodOptions {
			return err
		}

		fields := getFields(cfg.Tags, c, d)
		message := "api request"
		switch cfg.Logger {
		case nil:
			log.WithFields(fields).Info(message)
		default:
			entry := cfg.Logger.WithFields(fields)
			if c.Response() != nil && c.Response().StatusCode() >= 300 {
				entry.Warn(message)
			} else {
				entry.Info(message)
			}
		}
		return err
	}
}
