// Package docs registra el documento Swagger de la API en swag.
// swagger.json se sirve además como archivo en /docs (gofiber/contrib/swagger).
package docs

import (
	_ "embed"

	"github.com/swaggo/swag"
)

//go:embed swagger.json
var swaggerJSON string

// SwaggerInfo metadatos del documento; main puede ajustar Host y BasePath al arrancar.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Documentos API",
	Description:      "Cotizaciones, facturas, remisiones y traslados con numeración secuencial, estados y permisos por rol.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  swaggerJSON,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

// JSON devuelve el documento tal como se embebió.
func JSON() []byte { return []byte(swaggerJSON) }

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
