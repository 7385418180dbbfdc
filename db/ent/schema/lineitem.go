package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

type LineItem struct{ ent.Schema }

func (LineItem) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "line_items"},
	}
}

func (LineItem) Fields() []ent.Field {
	return []ent.Field{
		field.Int("receipt_id"),
		field.String("description").NotEmpty(),
		field.Int("quantity").Default(1).Positive(),
		field.Float("unit_price").
			SchemaType(map[string]string{dialect.SQLite: "numeric(12,2)"}),
		field.Float("line_total").
			SchemaType(map[string]string{dialect.SQLite: "numeric(12,2)"}),
		field.Float("vat_rate").Optional().Nillable().
			Range(0, 100),
	}
}

func (LineItem) Edges() []ent.Edge {
	return []ent.Edge{
		// MANY line items -> ONE receipt (FK: line_items.receipt_id).
		edge.From("receipt", Receipt.Type).
			Ref("items").
			Field("receipt_id").
			Required().
			Unique(),
	}
}

func (LineItem) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("receipt_id"),
	}
}
