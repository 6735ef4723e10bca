package middleware

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"lambda-handler-factory/pkg/factory"
)

// RequestLogger returns a before hook that logs every incoming event
func RequestLogger(logger logrus.FieldLogger) factory.Func {
	return func(ctx context.Context, event factory.Event, previous any) (any, error) {
		fields := logrus.Fields{
			"request_id": factory.RequestID(ctx),
			"size":       len(event),
		}

		if method := gjson.GetBytes(event, "httpMethod"); method.Exists() {
			fields["method"] = method.String()
			fields["path"] = gjson.GetBytes(event, "path").String()
		}
		if source := gjson.GetBytes(event, "source"); source.Exists() {
			fields["source"] = source.String()
		}

		logger.WithFields(fields).Info("Event received")
		return previous, nil
	}
}

// ResultLogger returns an after hook that logs the chain result at debug level
func ResultLogger(logger logrus.FieldLogger) factory.Func {
	return func(ctx context.Context, event factory.Event, previous any) (any, error) {
		logger.WithFields(logrus.Fields{
			"request_id": factory.RequestID(ctx),
			"result":     previous,
		}).Debug("Event handled")
		return previous, nil
	}
}
