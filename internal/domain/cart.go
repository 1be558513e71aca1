package domain

// CartItem — одна строка корзины. Name и Price зафиксированы в момент
// добавления: последующие изменения каталога уже добавленные строки не трогают.
type CartItem struct {
	ID        string
	ProductID string
	Name      string
	Price     float64
	Image     string
	Quantity  int
}

// CartSummary — агрегированное представление корзины, возвращаемое после
// каждой мутации. Total и ItemCount всегда пересчитываются заново.
type CartSummary struct {
	Items     []CartItem
	Total     float64
	ItemCount int
}

// Cart — корзина одной клиентской сессии. Не персистится на сервере;
// время жизни ограничено сессией, разделения между сессиями нет.
type Cart struct {
	items []CartItem
}

// NewCart создаёт пустую корзину.
func NewCart() *Cart {
	return &Cart{}
}

// Add добавляет строку в корзину. Если товар уже есть, количества суммируются,
// иначе строка дописывается в конец.
func (c *Cart) Add(item CartItem) (CartSummary, error) {
	if item.ProductID == "" {
		return c.Summary(), ErrProductIDRequired
	}
	if item.Quantity < 1 {
		return c.Summary(), ErrQuantityInvalid
	}
	if item.Price < 0 {
		return c.Summary(), ErrPriceInvalid
	}

	for i := range c.items {
		if c.items[i].ProductID == item.ProductID {
			c.items[i].Quantity += item.Quantity
			return c.Summary(), nil
		}
	}

	c.items = append(c.items, item)
	return c.Summary(), nil
}

// Update выставляет количество для строки. Количество меньше 1 эквивалентно Remove.
func (c *Cart) Update(productID string, quantity int) (CartSummary, error) {
	if productID == "" {
		return c.Summary(), ErrProductIDRequired
	}
	if quantity < 1 {
		return c.Remove(productID), nil
	}

	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items[i].Quantity = quantity
			return c.Summary(), nil
		}
	}

	return c.Summary(), ErrProductNotFound
}

// Remove удаляет строку по товару. Отсутствующая строка не считается ошибкой.
func (c *Cart) Remove(productID string) CartSummary {
	filtered := c.items[:0]
	for _, item := range c.items {
		if item.ProductID != productID {
			filtered = append(filtered, item)
		}
	}
	c.items = filtered
	return c.Summary()
}

// Clear опустошает корзину.
func (c *Cart) Clear() CartSummary {
	c.items = nil
	return c.Summary()
}

// Summary возвращает копию строк и свежие агрегаты.
func (c *Cart) Summary() CartSummary {
	items := make([]CartItem, len(c.items))
	copy(items, c.items)

	var total float64
	var count int
	for _, item := range c.items {
		total += item.Price * float64(item.Quantity)
		count += item.Quantity
	}

	return CartSummary{Items: items, Total: total, ItemCount: count}
}

// Snapshot замораживает текущее состояние корзины для попытки checkout.
func (c *Cart) Snapshot() CartSnapshot {
	s := c.Summary()
	return CartSnapshot{Items: s.Items, DeclaredTotal: s.Total}
}
