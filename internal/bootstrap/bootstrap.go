package bootstrap

import (
	"github.com/samber/do/v2"

	"github.com/codozor/kubestrap/internal/logger"
	"github.com/codozor/kubestrap/internal/service"
)

var Package = do.Package(
	service.Package,
	logger.Package,
)
