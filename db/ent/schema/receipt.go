package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

type Receipt struct{ ent.Schema }

func (Receipt) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "receipts"},
	}
}

func (Receipt) Fields() []ent.Field {
	return []ent.Field{
		field.String("vendor_name").NotEmpty(),
		// Trimmed, whitespace-collapsed, lowercased vendor; duplicate
		// probes and vendor filters query this column.
		field.String("vendor_norm").NotEmpty(),
		field.Time("tx_date"),
		field.Float("total_amount").
			SchemaType(map[string]string{dialect.SQLite: "numeric(12,2)"}),
		field.Float("tax_amount").
			SchemaType(map[string]string{dialect.SQLite: "numeric(12,2)"}),
		field.String("currency_code").NotEmpty().MinLen(3).MaxLen(3),
		field.String("category").Optional(),
		field.String("payment_method").Optional(),
		field.String("receipt_number").Optional(),
		field.String("image_ref").Optional(),
		// Derived cache of the audit engine's output; rewritten on every write.
		field.Bool("flag_duplicate").Default(false),
		field.Bool("flag_suspicious").Default(false),
		field.Bool("flag_missing_vat").Default(false),
		field.Bool("flag_math_error").Default(false),
		field.Time("created_at").Default(time.Now).Immutable(),
		field.Time("updated_at").Default(time.Now).UpdateDefault(time.Now),
	}
}

func (Receipt) Edges() []ent.Edge {
	return []ent.Edge{
		// ONE receipt -> MANY line items; deleting the receipt cascades.
		edge.To("items", LineItem.Type).
			Annotations(entsql.OnDelete(entsql.Cascade)),
	}
}

func (Receipt) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("vendor_norm"),
		index.Fields("tx_date"),
		index.Fields("category"),
	}
}
