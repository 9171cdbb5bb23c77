package database

// schemaStatements is the startup DDL, executed in order. Tables are created
// on boot so a fresh database is usable without separate migration tooling.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id INT PRIMARY KEY AUTO_INCREMENT,
		name VARCHAR(255) NOT NULL,
		service_type VARCHAR(100),
		container_type VARCHAR(100),
		price DECIMAL(10,2) NOT NULL DEFAULT 0,
		stocks INT NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS sales (
		id INT PRIMARY KEY AUTO_INCREMENT,
		customer_name VARCHAR(255) NOT NULL,
		customer_address TEXT NOT NULL,
		total_amount DECIMAL(10,2) NOT NULL DEFAULT 0,
		status VARCHAR(50) NOT NULL DEFAULT 'pending',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_sales_created_at (created_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS sale_items (
		id INT PRIMARY KEY AUTO_INCREMENT,
		sale_id INT NOT NULL,
		product_id INT NOT NULL,
		product_name VARCHAR(255) NOT NULL,
		quantity INT NOT NULL,
		unit_price DECIMAL(10,2) NOT NULL,
		FOREIGN KEY (sale_id) REFERENCES sales(id),
		FOREIGN KEY (product_id) REFERENCES products(id),
		INDEX idx_sale_items_sale_id (sale_id),
		INDEX idx_sale_items_product_id (product_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS companies (
		id INT PRIMARY KEY AUTO_INCREMENT,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255),
		phone VARCHAR(50),
		address TEXT,
		notes TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS inventory_items (
		id INT PRIMARY KEY AUTO_INCREMENT,
		company_id INT NOT NULL,
		name VARCHAR(255) NOT NULL,
		category VARCHAR(100),
		quantity DECIMAL(10,2) NOT NULL DEFAULT 0,
		unit VARCHAR(50) NOT NULL DEFAULT 'pcs',
		unit_price DECIMAL(10,2) NOT NULL DEFAULT 0,
		description TEXT,
		sku VARCHAR(100),
		low_stock_threshold DECIMAL(10,2) NOT NULL DEFAULT 10,
		last_updated TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (company_id) REFERENCES companies(id) ON DELETE CASCADE,
		INDEX idx_inventory_items_company_id (company_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS stock_history (
		id INT PRIMARY KEY AUTO_INCREMENT,
		item_id INT NOT NULL,
		action VARCHAR(50) NOT NULL,
		quantity_change DECIMAL(10,2) NOT NULL DEFAULT 0,
		new_quantity DECIMAL(10,2) NOT NULL DEFAULT 0,
		reason VARCHAR(100),
		notes TEXT,
		created_by VARCHAR(100) NOT NULL DEFAULT 'system',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (item_id) REFERENCES inventory_items(id) ON DELETE CASCADE,
		INDEX idx_stock_history_item_id (item_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}
