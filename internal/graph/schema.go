// Package graph exposes the in-memory index over GraphQL.
package graph

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/graphql-go/graphql"

	"github.com/esposm03/my-cms/internal/index"
)

// NewSchema assembles the schema over the given index:
//
//	type Post { id: ID!, created: String!, title: String!, content: String!, tags: [String!]! }
//	input NewPost { title: String!, content: String!, tags: [String!]! }
//	type Tag { name: String!, posts: [Post!]! }
//	type Query { post(id: ID!): Post, posts: [Post!]! }
//	type Mutation { newPost(post: NewPost!): Post! }
func NewSchema(ix *index.Index) (graphql.Schema, error) {
	postType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Post",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(index.Post).ID.String(), nil
				},
			},
			"created": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(index.Post).Created.UTC().Format(time.RFC3339Nano), nil
				},
			},
			"title": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(index.Post).Title, nil
				},
			},
			"content": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(index.Post).Content, nil
				},
			},
			"tags": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					// the index already hands out a copy
					tags := p.Source.(index.Post).Tags
					if tags == nil {
						tags = []string{}
					}
					return tags, nil
				},
			},
		},
	})

	tagType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Tag",
		Fields: graphql.Fields{
			"name": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(index.Tag).Name, nil
				},
			},
			"posts": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(postType))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return ix.PostsByTag(p.Source.(index.Tag).Name), nil
				},
			},
		},
	})

	newPostInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "NewPost",
		Fields: graphql.InputObjectConfigFieldMap{
			"title":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"content": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"tags":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String)))},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"post": &graphql.Field{
				Type: postType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, err := uuid.Parse(p.Args["id"].(string))
					if err != nil {
						return nil, fmt.Errorf("invalid post id: %w", err)
					}
					post, ok := ix.Post(id)
					if !ok {
						return nil, nil
					}
					return post, nil
				},
			},
			"posts": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(postType))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return ix.Posts(), nil
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"newPost": &graphql.Field{
				Type: graphql.NewNonNull(postType),
				Args: graphql.FieldConfigArgument{
					"post": &graphql.ArgumentConfig{Type: graphql.NewNonNull(newPostInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					in, ok := p.Args["post"].(map[string]interface{})
					if !ok {
						return nil, fmt.Errorf("newPost: missing input")
					}
					post := index.Post{
						ID:      uuid.New(),
						Created: time.Now().UTC(),
						Title:   in["title"].(string),
						Content: in["content"].(string),
					}
					if raw, ok := in["tags"].([]interface{}); ok {
						for _, t := range raw {
							post.Tags = append(post.Tags, t.(string))
						}
					}
					// Tag adjacencies are not updated here; the named
					// tags keep their previous post lists.
					ix.AddPost(post)
					return post, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
		// Tag is unreachable from Query but part of the contract.
		Types: []graphql.Type{tagType},
	})
}
