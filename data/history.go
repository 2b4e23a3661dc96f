package data

import "strconv"

// Kinds of catalog node recorded in the history.
const (
	KindCd          = "cd"
	KindDirigent    = "dirigent"
	KindKomponist   = "komponist"
	KindKompositie  = "kompositie"
	KindUitvoerders = "uitvoerders"
)

// A History row records that a node was viewed. Title is the node's title
// at the time, so entries survive renames and deletes.
type History struct {
	ID      int64
	Kind    string
	NodeID  int64
	Title   string
	Created int64
}

func (History) TableName() string { return "history" }

// Path is the url of the node's detail page.
func (h History) Path() string {
	return "/" + h.Kind + "/" + strconv.FormatInt(h.NodeID, 10)
}
