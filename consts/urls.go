package consts

const (
	SandboxHost    = "http://devfactura.in"
	ProductionHost = "https://factura.com"

	DefaultAPIVersion = "3"

	SegmentCFDI33  = "cfdi33"
	SegmentClients = "clients"

	PathList   = "/list"
	PathCreate = "/create"
	PathUpdate = "/update"
	PathCancel = "/cancel"
	PathEmail  = "/email"
	PathXML    = "/xml"
	PathPDF    = "/pdf"

	HeaderAPIKey    = "F-API-KEY"
	HeaderSecretKey = "F-SECRET-KEY"
	HeaderUserAgent = "X-Facturacom-Client-User-Agent"
)
