package core

import (
	"fmt"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// Binary codecs for the entity graph. Each codec follows the mus-go
// serializer shape: Size, Marshal into a presized buffer, Unmarshal
// returning the number of bytes consumed.

// IDMUS encodes an ID as a varint.
var IDMUS = idMUS{}

type idMUS struct{}

func (idMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (idMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	u, n, err := varint.Uint64.Unmarshal(bs)
	return ID(u), n, err
}

func (idMUS) Size(v ID) int {
	return varint.Uint64.Size(uint64(v))
}

// RestaurantMUS encodes a Restaurant.
var RestaurantMUS = restaurantMUS{}

type restaurantMUS struct{}

func (restaurantMUS) Marshal(v Restaurant, bs []byte) (n int) {
	n = ord.String.Marshal(v.ID, bs)
	n += ord.String.Marshal(v.Name, bs[n:])
	n += ord.String.Marshal(v.NormalizedName, bs[n:])
	n += ord.String.Marshal(v.Location, bs[n:])
	return n + ord.String.Marshal(v.SourceURL, bs[n:])
}

func (restaurantMUS) Unmarshal(bs []byte) (v Restaurant, n int, err error) {
	fields := []*string{&v.ID, &v.Name, &v.NormalizedName, &v.Location, &v.SourceURL}
	var n1 int
	for _, f := range fields {
		*f, n1, err = ord.String.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	return
}

func (restaurantMUS) Size(v Restaurant) (size int) {
	size = ord.String.Size(v.ID)
	size += ord.String.Size(v.Name)
	size += ord.String.Size(v.NormalizedName)
	size += ord.String.Size(v.Location)
	return size + ord.String.Size(v.SourceURL)
}

// MenuItemMUS encodes a MenuItem. Price is stored as raw IEEE-754 bits.
var MenuItemMUS = menuItemMUS{}

type menuItemMUS struct{}

func (menuItemMUS) Marshal(v MenuItem, bs []byte) (n int) {
	n = IDMUS.Marshal(v.ID, bs)
	n += ord.String.Marshal(v.RestaurantID, bs[n:])
	n += ord.String.Marshal(v.RestaurantName, bs[n:])
	n += ord.String.Marshal(v.NormalizedRestaurantName, bs[n:])
	n += ord.String.Marshal(v.Section, bs[n:])
	n += ord.String.Marshal(v.Name, bs[n:])
	n += raw.Float64.Marshal(v.Price, bs[n:])
	n += ord.String.Marshal(v.Description, bs[n:])
	n += varint.Uint64.Marshal(uint64(v.Dietary), bs[n:])
	return n + ord.String.Marshal(v.Location, bs[n:])
}

func (menuItemMUS) Unmarshal(bs []byte) (v MenuItem, n int, err error) {
	var n1 int
	v.ID, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	for _, f := range []*string{&v.RestaurantID, &v.RestaurantName, &v.NormalizedRestaurantName, &v.Section, &v.Name} {
		*f, n1, err = ord.String.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	v.Price, n1, err = raw.Float64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Description, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var d uint64
	d, n1, err = varint.Uint64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Dietary = Dietary(d)
	v.Location, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (menuItemMUS) Size(v MenuItem) (size int) {
	size = IDMUS.Size(v.ID)
	size += ord.String.Size(v.RestaurantID)
	size += ord.String.Size(v.RestaurantName)
	size += ord.String.Size(v.NormalizedRestaurantName)
	size += ord.String.Size(v.Section)
	size += ord.String.Size(v.Name)
	size += raw.Float64.Size(v.Price)
	size += ord.String.Size(v.Description)
	size += varint.Uint64.Size(uint64(v.Dietary))
	return size + ord.String.Size(v.Location)
}

// EntityMUS encodes an Entity as its kind followed by the payload.
var EntityMUS = entityMUS{}

type entityMUS struct{}

func (entityMUS) Marshal(v Entity, bs []byte) (n int) {
	n = varint.Uint64.Marshal(uint64(v.Kind), bs)
	switch v.Kind {
	case EntityRestaurant:
		n += RestaurantMUS.Marshal(*v.Restaurant, bs[n:])
	case EntityMenuItem:
		n += MenuItemMUS.Marshal(*v.MenuItem, bs[n:])
	}
	return n
}

func (entityMUS) Unmarshal(bs []byte) (v Entity, n int, err error) {
	kind, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return
	}
	v.Kind = EntityKind(kind)
	var n1 int
	switch v.Kind {
	case EntityRestaurant:
		var r Restaurant
		r, n1, err = RestaurantMUS.Unmarshal(bs[n:])
		v.Restaurant = &r
	case EntityMenuItem:
		var m MenuItem
		m, n1, err = MenuItemMUS.Unmarshal(bs[n:])
		v.MenuItem = &m
	default:
		err = fmt.Errorf("%w: kind %d", ErrInvalidEntity, kind)
	}
	n += n1
	return
}

func (entityMUS) Size(v Entity) (size int) {
	size = varint.Uint64.Size(uint64(v.Kind))
	switch v.Kind {
	case EntityRestaurant:
		size += RestaurantMUS.Size(*v.Restaurant)
	case EntityMenuItem:
		size += MenuItemMUS.Size(*v.MenuItem)
	}
	return size
}
