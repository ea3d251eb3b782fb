package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/unaigarro/mapstamp/internal/core/staticmap"
	"github.com/unaigarro/mapstamp/internal/core/usecases"
)

// buildSchema creates the GraphQL schema wired to our services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	snapshotType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Snapshot",
		Fields: graphql.Fields{
			"id":           &graphql.Field{Type: graphql.String},
			"title":        &graphql.Field{Type: graphql.String},
			"filename":     &graphql.Field{Type: graphql.String},
			"alt_text":     &graphql.Field{Type: graphql.String},
			"folder":       &graphql.Field{Type: graphql.String},
			"url":          &graphql.Field{Type: graphql.String},
			"path":         &graphql.Field{Type: graphql.String},
			"content_type": &graphql.Field{Type: graphql.String},
			"size_bytes":   &graphql.Field{Type: graphql.Int},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"staticMapUrl": &graphql.Field{
				Type:        graphql.String,
				Description: "Build a signed static map URL for a center location",
				Args: graphql.FieldConfigArgument{
					"center":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"width":   &graphql.ArgumentConfig{Type: graphql.Int},
					"height":  &graphql.ArgumentConfig{Type: graphql.Int},
					"zoom":    &graphql.ArgumentConfig{Type: graphql.Int},
					"scale":   &graphql.ArgumentConfig{Type: graphql.Int},
					"format":  &graphql.ArgumentConfig{Type: graphql.String},
					"maptype": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					center := p.Args["center"].(string)

					var req usecases.MapRequest
					if w, ok := p.Args["width"].(int); ok {
						req.Width = w
					}
					if h, ok := p.Args["height"].(int); ok {
						req.Height = h
					}
					// One dimension alone pairs with the documented
					// default for the other.
					if req.Width != 0 && req.Height == 0 {
						req.Height = staticmap.DefaultHeight
					}
					if req.Height != 0 && req.Width == 0 {
						req.Width = staticmap.DefaultWidth
					}
					if z, ok := p.Args["zoom"].(int); ok {
						req.Zoom = &z
					}
					if s, ok := p.Args["scale"].(int); ok {
						req.Scale = &s
					}
					if f, ok := p.Args["format"].(string); ok {
						req.Format = f
					}
					if m, ok := p.Args["maptype"].(string); ok {
						req.MapType = m
					}

					return deps.Maps.BuildLocationURL(p.Context, center, req)
				},
			},
			"apiKeyConfigured": &graphql.Field{
				Type:        graphql.Boolean,
				Description: "Whether a Google Maps API key is stored",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					key, err := deps.Settings.APIKey(p.Context)
					if err != nil {
						return nil, err
					}
					return key != "", nil
				},
			},
			"snapshots": &graphql.Field{
				Type:        graphql.NewList(snapshotType),
				Description: "List stored snapshots, newest first",
				Args: graphql.FieldConfigArgument{
					"offset": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 0},
					"limit":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 20},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					offset := p.Args["offset"].(int)
					limit := p.Args["limit"].(int)
					snaps, _, err := deps.Snapshots.List(p.Context, offset, limit)
					return snaps, err
				},
			},
			"snapshot": &graphql.Field{
				Type:        snapshotType,
				Description: "Get a stored snapshot by ID",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id := p.Args["id"].(string)
					return deps.Snapshots.GetByID(p.Context, id)
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.Context(),
		})

		return c.JSON(result)
	}
}
