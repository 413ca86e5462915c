package shopify

import (
	"fmt"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

// adminSchemaSDL is the subset of the Shopify Admin GraphQL schema that the
// order queries touch.
const adminSchemaSDL = `
scalar DateTime
scalar URL

enum OrderSortKeys {
  CREATED_AT
  CUSTOMER_NAME
  ID
  ORDER_NUMBER
  PROCESSED_AT
  RELEVANCE
  TOTAL_PRICE
  UPDATED_AT
}

enum OrderDisplayFulfillmentStatus {
  FULFILLED
  IN_PROGRESS
  ON_HOLD
  OPEN
  PARTIALLY_FULFILLED
  PENDING_FULFILLMENT
  REQUEST_DECLINED
  RESTOCKED
  SCHEDULED
  UNFULFILLED
}

type FulfillmentTrackingInfo {
  number: String
  company: String
  url: URL
}

type Fulfillment {
  id: ID!
  trackingInfo(first: Int): [FulfillmentTrackingInfo!]!
}

type Order {
  id: ID!
  name: String!
  email: String
  createdAt: DateTime!
  displayFulfillmentStatus: OrderDisplayFulfillmentStatus!
  fulfillments(first: Int): [Fulfillment!]!
}

type OrderEdge {
  cursor: String!
  node: Order!
}

type PageInfo {
  hasNextPage: Boolean!
  endCursor: String
}

type OrderConnection {
  edges: [OrderEdge!]!
  pageInfo: PageInfo!
}

type QueryRoot {
  orders(first: Int, after: String, query: String, sortKey: OrderSortKeys = ID, reverse: Boolean = false): OrderConnection!
}

schema {
  query: QueryRoot
}
`

const ordersQueryText = `
query OrdersBySearch($search: String!, $first: Int!, $sortKey: OrderSortKeys, $reverse: Boolean) {
  orders(first: $first, query: $search, sortKey: $sortKey, reverse: $reverse) {
    edges {
      node {
        id
        name
        email
        createdAt
        displayFulfillmentStatus
        fulfillments {
          trackingInfo {
            number
            company
            url
          }
        }
      }
    }
  }
}
`

// queryDocument is a validated operation ready to be posted.
type queryDocument struct {
	Text          string
	OperationName string
}

var adminSchema = gqlparser.MustLoadSchema(&ast.Source{
	Name:  "shopify_admin_subset.graphql",
	Input: adminSchemaSDL,
})

var ordersQuery = mustLoadQuery(ordersQueryText)

// loadQuery validates text against the admin schema subset.
func loadQuery(text string) (queryDocument, error) {
	doc, errs := gqlparser.LoadQuery(adminSchema, text)
	if len(errs) > 0 {
		return queryDocument{}, fmt.Errorf("invalid query: %w", errs)
	}
	if len(doc.Operations) != 1 {
		return queryDocument{}, fmt.Errorf("expected one operation, got %d", len(doc.Operations))
	}
	return queryDocument{
		Text:          text,
		OperationName: doc.Operations[0].Name,
	}, nil
}

func mustLoadQuery(text string) queryDocument {
	q, err := loadQuery(text)
	if err != nil {
		panic(err)
	}
	return q
}
