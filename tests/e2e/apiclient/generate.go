package apiclient

//go:generate oapi-codegen --config=oapi-codegen.yaml ../../../internal/api/openapi.yaml
