package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"
)

// buildSchema creates the GraphQL schema wired to our services. It covers
// the read side only; mutations stay on REST where the session gate lives.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	geoPointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "GeoPoint",
		Fields: graphql.Fields{
			"longitude": &graphql.Field{Type: graphql.Float},
			"latitude":  &graphql.Field{Type: graphql.Float},
		},
	})

	mediaType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Media",
		Fields: graphql.Fields{
			"type": &graphql.Field{Type: graphql.String},
			"url":  &graphql.Field{Type: graphql.String},
		},
	})

	queryDefType := graphql.NewObject(graphql.ObjectConfig{
		Name: "CollectionQuery",
		Fields: graphql.Fields{
			"id":            &graphql.Field{Type: graphql.String},
			"name":          &graphql.Field{Type: graphql.String},
			"location":      &graphql.Field{Type: geoPointType},
			"radius_km":     &graphql.Field{Type: graphql.Float},
			"start_date":    &graphql.Field{Type: graphql.DateTime},
			"end_date":      &graphql.Field{Type: graphql.DateTime},
			"keywords":      &graphql.Field{Type: graphql.NewList(graphql.String)},
			"frequency_min": &graphql.Field{Type: graphql.Int},
			"max_tweets":    &graphql.Field{Type: graphql.Int},
		},
	})

	archivedType := graphql.NewObject(graphql.ObjectConfig{
		Name: "ArchivedQuery",
		Fields: graphql.Fields{
			"id":            &graphql.Field{Type: graphql.String},
			"name":          &graphql.Field{Type: graphql.String},
			"location":      &graphql.Field{Type: geoPointType},
			"radius_km":     &graphql.Field{Type: graphql.Float},
			"start_date":    &graphql.Field{Type: graphql.DateTime},
			"end_date":      &graphql.Field{Type: graphql.DateTime},
			"keywords":      &graphql.Field{Type: graphql.NewList(graphql.String)},
			"frequency_min": &graphql.Field{Type: graphql.Int},
			"max_tweets":    &graphql.Field{Type: graphql.Int},
			"is_public":     &graphql.Field{Type: graphql.Boolean},
		},
	})

	tweetType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Tweet",
		Fields: graphql.Fields{
			"id":                 &graphql.Field{Type: graphql.String},
			"query_id":           &graphql.Field{Type: graphql.String},
			"likes":              &graphql.Field{Type: graphql.Int},
			"retweets":           &graphql.Field{Type: graphql.Int},
			"replies":            &graphql.Field{Type: graphql.Int},
			"media":              &graphql.Field{Type: graphql.NewList(mediaType)},
			"created_at":         &graphql.Field{Type: graphql.DateTime},
			"location":           &graphql.Field{Type: geoPointType},
			"content":            &graphql.Field{Type: graphql.String},
			"keyword_count":      &graphql.Field{Type: graphql.Int},
			"interaction_score":  &graphql.Field{Type: graphql.Float},
			"relatability_score": &graphql.Field{Type: graphql.Float},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"activeQueries": &graphql.Field{
				Type:        graphql.NewList(queryDefType),
				Description: "Queries currently collecting",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Dashboard.Queries(p.Context), nil
				},
			},
			"activeTweets": &graphql.Field{
				Type:        graphql.NewList(tweetType),
				Description: "Recent tweets across all active queries",
				Args: graphql.FieldConfigArgument{
					"limit": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 100},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					limit := p.Args["limit"].(int)
					return deps.Dashboard.Tweets(p.Context, limit), nil
				},
			},
			"archivedQueries": &graphql.Field{
				Type:        graphql.NewList(archivedType),
				Description: "All archived queries",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Archive.List(p.Context), nil
				},
			},
			"archivedQuery": &graphql.Field{
				Type:        archivedType,
				Description: "One archived query by ID",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id := p.Args["id"].(string)
					return deps.Archive.Get(p.Context, id), nil
				},
			},
			"archivedTweets": &graphql.Field{
				Type:        graphql.NewList(tweetType),
				Description: "Tweets of an archived query",
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"limit": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 100},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id := p.Args["id"].(string)
					limit := p.Args["limit"].(int)
					return deps.Archive.Tweets(p.Context, id, limit), nil
				},
			},
			"publicQueries": &graphql.Field{
				Type:        graphql.NewList(archivedType),
				Description: "Archived queries shared publicly",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Archive.PublicList(p.Context), nil
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
