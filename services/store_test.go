package services

import (
	"context"
	"reflect"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// fakeCollection keeps documents in memory and understands the filter and
// update operators the services use. findOneErr and insertErr inject store
// failures.
type fakeCollection struct {
	docs       []bson.M
	findOneErr error
	insertErr  error
}

func newFakeCollection(docs ...interface{}) *fakeCollection {
	c := &fakeCollection{}
	for _, doc := range docs {
		c.docs = append(c.docs, mustDoc(doc))
	}
	return c
}

func mustDoc(v interface{}) bson.M {
	raw, err := bson.Marshal(v)
	if err != nil {
		panic(err)
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		panic(err)
	}
	return doc
}

// normalizeValue round-trips a filter value through BSON so typed values
// (e.g. models.TaskStatus) compare equal to the decoded form mustDoc stores.
func normalizeValue(v interface{}) interface{} {
	raw, err := bson.Marshal(bson.M{"v": v})
	if err != nil {
		return v
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return v
	}
	return doc["v"]
}

func matchFilter(doc bson.M, filter interface{}) bool {
	for key, want := range filter.(bson.M) {
		got, ok := doc[key]
		if !ok {
			return false
		}
		if cond, isCond := want.(bson.M); isCond {
			if in, hasIn := cond["$in"]; hasIn {
				if !containsValue(in, got) {
					return false
				}
				continue
			}
		}
		if !reflect.DeepEqual(got, normalizeValue(want)) {
			return false
		}
	}
	return true
}

func containsValue(list, value interface{}) bool {
	rv := reflect.ValueOf(list)
	for i := 0; i < rv.Len(); i++ {
		if reflect.DeepEqual(value, rv.Index(i).Interface()) {
			return true
		}
	}
	return false
}

func applyUpdate(doc bson.M, update interface{}) {
	u := update.(bson.M)
	if set, ok := u["$set"].(bson.M); ok {
		for k, v := range set {
			doc[k] = v
		}
	}
	if push, ok := u["$push"].(bson.M); ok {
		for k, v := range push {
			arr, _ := doc[k].(primitive.A)
			doc[k] = append(arr, v)
		}
	}
	if pull, ok := u["$pull"].(bson.M); ok {
		for k, v := range pull {
			arr, _ := doc[k].(primitive.A)
			kept := primitive.A{}
			for _, el := range arr {
				if !reflect.DeepEqual(el, v) {
					kept = append(kept, el)
				}
			}
			doc[k] = kept
		}
	}
}

func (c *fakeCollection) FindOne(ctx context.Context, filter interface{}, _ ...*options.FindOneOptions) *mongo.SingleResult {
	if c.findOneErr != nil {
		return mongo.NewSingleResultFromDocument(bson.M{}, c.findOneErr, nil)
	}
	for _, doc := range c.docs {
		if matchFilter(doc, filter) {
			return mongo.NewSingleResultFromDocument(doc, nil, nil)
		}
	}
	return mongo.NewSingleResultFromDocument(bson.M{}, mongo.ErrNoDocuments, nil)
}

func (c *fakeCollection) Find(ctx context.Context, filter interface{}, _ ...*options.FindOptions) (*mongo.Cursor, error) {
	matched := []interface{}{}
	for _, doc := range c.docs {
		if matchFilter(doc, filter) {
			matched = append(matched, doc)
		}
	}
	return mongo.NewCursorFromDocuments(matched, nil, nil)
}

func (c *fakeCollection) InsertOne(ctx context.Context, document interface{}, _ ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	if c.insertErr != nil {
		return nil, c.insertErr
	}
	doc := mustDoc(document)
	c.docs = append(c.docs, doc)
	return &mongo.InsertOneResult{InsertedID: doc["_id"]}, nil
}

func (c *fakeCollection) UpdateOne(ctx context.Context, filter, update interface{}, _ ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	for _, doc := range c.docs {
		if matchFilter(doc, filter) {
			applyUpdate(doc, update)
			return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
		}
	}
	return &mongo.UpdateResult{}, nil
}

func (c *fakeCollection) DeleteOne(ctx context.Context, filter interface{}, _ ...*options.DeleteOptions) (*mongo.DeleteResult, error) {
	for i, doc := range c.docs {
		if matchFilter(doc, filter) {
			c.docs = append(c.docs[:i], c.docs[i+1:]...)
			return &mongo.DeleteResult{DeletedCount: 1}, nil
		}
	}
	return &mongo.DeleteResult{}, nil
}

func (c *fakeCollection) DeleteMany(ctx context.Context, filter interface{}, _ ...*options.DeleteOptions) (*mongo.DeleteResult, error) {
	kept := []bson.M{}
	var deleted int64
	for _, doc := range c.docs {
		if matchFilter(doc, filter) {
			deleted++
			continue
		}
		kept = append(kept, doc)
	}
	c.docs = kept
	return &mongo.DeleteResult{DeletedCount: deleted}, nil
}

func (c *fakeCollection) matching(filter bson.M) int {
	n := 0
	for _, doc := range c.docs {
		if matchFilter(doc, filter) {
			n++
		}
	}
	return n
}
